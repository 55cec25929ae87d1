// Package continent classifies countries into the six load factor continents
// using an embedded country table.
package continent

import (
	"context"
	_ "embed"
	"errors"
	"flight-carbon-service/internal/domain"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed data/countries.yaml
var defaultCountries []byte

type countryEntry struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

type countryFile struct {
	Continents map[string][]countryEntry `yaml:"continents"`
}

// TableResolver implements ports.ContinentResolver. Lookups try, in order,
// the ISO 3166-1 alpha-2 code, an exact name or alias, and finally names
// contained in the input as whole words when they all agree on one continent.
//
// A TableResolver is read-only after construction and safe for concurrent use.
type TableResolver struct {
	byCode map[string]domain.Continent
	byName map[string]domain.Continent
}

// NewTableResolver loads the embedded country table.
func NewTableResolver() (*TableResolver, error) {
	return ParseTable(strings.NewReader(string(defaultCountries)))
}

// LoadTable reads a country table from path, or the embedded one when path is empty.
func LoadTable(path string) (*TableResolver, error) {
	if path == "" {
		return NewTableResolver()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load country table: %w", err)
	}
	defer f.Close()

	return ParseTable(f)
}

// ParseTable decodes a YAML country table.
func ParseTable(r io.Reader) (*TableResolver, error) {
	var file countryFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse country table: %w", err)
	}
	if len(file.Continents) == 0 {
		return nil, errors.New("parse country table: no continents")
	}

	t := &TableResolver{
		byCode: make(map[string]domain.Continent),
		byName: make(map[string]domain.Continent),
	}

	for label, entries := range file.Continents {
		cont, err := domain.ParseContinent(label)
		if err != nil {
			return nil, fmt.Errorf("parse country table: %w", err)
		}

		for _, e := range entries {
			code := strings.ToUpper(strings.TrimSpace(e.Code))
			if len(code) != 2 {
				return nil, fmt.Errorf("parse country table: %s: invalid code %q", label, e.Code)
			}
			if prev, ok := t.byCode[code]; ok && prev != cont {
				return nil, fmt.Errorf("parse country table: code %s listed under %s and %s", code, prev, cont)
			}
			t.byCode[code] = cont

			for _, n := range append([]string{e.Name}, e.Aliases...) {
				key := normalize(n)
				if key == "" {
					return nil, fmt.Errorf("parse country table: %s: empty name for %s", label, code)
				}
				if prev, ok := t.byName[key]; ok && prev != cont {
					return nil, fmt.Errorf("parse country table: %q listed under %s and %s", n, prev, cont)
				}
				t.byName[key] = cont
			}
		}
	}

	return t, nil
}

// normalize lowercases and reduces punctuation to single spaces.
func normalize(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

func (t *TableResolver) Continent(ctx context.Context, country string) (domain.Continent, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContinentUnknown, err
	}

	trimmed := strings.TrimSpace(country)
	if len(trimmed) == 2 {
		if c, ok := t.byCode[strings.ToUpper(trimmed)]; ok {
			return c, nil
		}
	}

	key := normalize(trimmed)
	if key == "" {
		return domain.ContinentUnknown, fmt.Errorf("continent for %q: %w", country, domain.ErrUnknownContinent)
	}

	if c, ok := t.byName[key]; ok {
		return c, nil
	}

	padded := " " + key + " "
	found := domain.ContinentUnknown
	for name, c := range t.byName {
		if !strings.Contains(padded, " "+name+" ") {
			continue
		}
		if found != domain.ContinentUnknown && found != c {
			return domain.ContinentUnknown, fmt.Errorf("continent for %q: ambiguous: %w", country, domain.ErrUnknownContinent)
		}
		found = c
	}

	if found == domain.ContinentUnknown {
		return domain.ContinentUnknown, fmt.Errorf("continent for %q: %w", country, domain.ErrUnknownContinent)
	}
	return found, nil
}
