package domain

import "unicode/utf8"

// Selection is a named, owned collection of ads.
type Selection struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	OwnerID int64   `json:"owner"`
	Items   []int64 `json:"items"`
}

// NewSelection creates a validated Selection. Duplicate item ids are dropped.
func NewSelection(name string, ownerID int64, items []int64) (*Selection, error) {
	s := &Selection{
		Name:    name,
		OwnerID: ownerID,
		Items:   UniqueIDs(items),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the Selection has valid data.
func (s *Selection) Validate() error {
	var errs ValidationErrors

	if s.Name == "" {
		errs.Add("name", KindRequired, "this field is required")
	} else if utf8.RuneCountInString(s.Name) > 100 {
		errs.Add("name", KindInvalid, "must be at most 100 characters")
	}
	if s.OwnerID <= 0 {
		errs.Add("owner", KindRequired, "this field is required")
	}
	for _, id := range s.Items {
		if id <= 0 {
			errs.Add("items", KindInvalid, "must contain positive ad ids")
			break
		}
	}

	return errs.Err()
}

// SelectionPatch carries the fields of a selection update.
// Nil fields are left unchanged; a non-nil Items replaces the item set.
type SelectionPatch struct {
	Name    *string
	OwnerID *int64
	Items   *[]int64
}

// Apply copies the set fields of p onto the selection and validates the result.
// On validation failure the selection is left untouched.
func (s *Selection) Apply(p SelectionPatch) error {
	updated := *s
	if p.Name != nil {
		updated.Name = *p.Name
	}
	if p.OwnerID != nil {
		updated.OwnerID = *p.OwnerID
	}
	if p.Items != nil {
		updated.Items = UniqueIDs(*p.Items)
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*s = updated
	return nil
}

// UniqueIDs returns ids without duplicates, keeping first-seen order.
// It never returns nil.
func UniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
