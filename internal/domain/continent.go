package domain

import (
	"fmt"
	"strings"
)

// Continent is one of the six regions the ICAO load factor tables are consolidated into.
type Continent int

const (
	ContinentUnknown Continent = iota
	Europe
	NorthAmerica
	SouthAmerica
	Africa
	Asia
	Oceania
)

var continentNames = [...]string{
	ContinentUnknown: "",
	Europe:           "Europe",
	NorthAmerica:     "North America",
	SouthAmerica:     "South America",
	Africa:           "Africa",
	Asia:             "Asia",
	Oceania:          "Oceania",
}

// Continents returns the six known continents in table order.
func Continents() []Continent {
	return []Continent{Europe, NorthAmerica, SouthAmerica, Africa, Asia, Oceania}
}

func (c Continent) String() string {
	if c < 0 || int(c) >= len(continentNames) {
		return fmt.Sprintf("Continent(%d)", int(c))
	}
	return continentNames[c]
}

// Valid reports whether c is one of the six known continents.
func (c Continent) Valid() bool {
	return c > ContinentUnknown && int(c) < len(continentNames)
}

// ParseContinent matches a continent name ignoring case, surrounding whitespace,
// and '_' or '-' used in place of a space.
func ParseContinent(s string) (Continent, error) {
	norm := normalizeContinentName(s)
	for _, c := range Continents() {
		if norm == strings.ToLower(c.String()) {
			return c, nil
		}
	}
	return ContinentUnknown, fmt.Errorf("parse continent %q: %w", s, ErrUnknownContinent)
}

func normalizeContinentName(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
