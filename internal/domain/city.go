package domain

// A journey waypoint after geocoding and continent resolution.
type City struct {
	Name        string
	Coordinates Coordinates
	Country     string
	CountryCode string
	Continent   Continent
}
