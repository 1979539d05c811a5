package domain

import "unicode/utf8"

const maxLocationNameLength = 100

// Location is a named place users are associated with.
// Coordinates are optional.
type Location struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// NewLocation creates a Location with only a name, as used by get-or-create.
func NewLocation(name string) (*Location, error) {
	loc := &Location{Name: name}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}

// Validate checks if the Location has valid data.
func (l *Location) Validate() error {
	var errs ValidationErrors

	if l.Name == "" {
		errs.Add("name", KindRequired, "this field is required")
	} else if utf8.RuneCountInString(l.Name) > maxLocationNameLength {
		errs.Add("name", KindInvalid, "must be at most 100 characters")
	}
	if l.Lat != nil && (*l.Lat < -90 || *l.Lat > 90) {
		errs.Add("lat", KindInvalid, "must be between -90 and 90")
	}
	if l.Lng != nil && (*l.Lng < -180 || *l.Lng > 180) {
		errs.Add("lng", KindInvalid, "must be between -180 and 180")
	}

	return errs.Err()
}
