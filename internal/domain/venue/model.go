package venue

import "strings"

// UnknownCountry is the creation default when the source omits the country.
// The upstream live feed never carries one.
const UnknownCountry = "Unknown"

// Venue is a ground identified by its unique name. Created lazily, never
// updated by the pipeline after creation.
type Venue struct {
	ID       int64
	Name     string
	City     string
	Country  string
	Capacity *int
}

// WithDefaults returns a copy with trimmed fields and the country sentinel
// applied.
func (v Venue) WithDefaults() Venue {
	v.Name = strings.TrimSpace(v.Name)
	v.City = strings.TrimSpace(v.City)
	if strings.TrimSpace(v.Country) == "" {
		v.Country = UnknownCountry
	}
	return v
}
