package domain

import "unicode/utf8"

// Category groups ads. Names are unique.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategory creates a validated Category.
func NewCategory(name string) (*Category, error) {
	c := &Category{Name: name}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	var errs ValidationErrors
	if c.Name == "" {
		errs.Add("name", KindRequired, "this field is required")
	} else if utf8.RuneCountInString(c.Name) > 100 {
		errs.Add("name", KindInvalid, "must be at most 100 characters")
	}
	return errs.Err()
}
