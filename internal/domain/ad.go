package domain

import "unicode/utf8"

const (
	maxAdNameLength        = 200
	maxAdDescriptionLength = 2000
)

// Ad is a classified listing.
//
// AuthorUsername and CategoryName are read-only copies of the related
// records' slugs, filled in by the store when an ad is loaded.
type Ad struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AuthorID    int64  `json:"author_id"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
	// Image is the object storage key of the ad's image; empty when none.
	Image      string `json:"image"`
	CategoryID int64  `json:"category_id"`

	AuthorUsername string `json:"author"`
	CategoryName   string `json:"category"`
}

// NewAd creates a new unpublished Ad. Ads can never be created as
// published; passing isPublished=true returns ErrPublishedOnCreate.
func NewAd(name string, authorID int64, price int64, description string, isPublished bool, categoryID int64) (*Ad, error) {
	if isPublished {
		return nil, ErrPublishedOnCreate
	}

	ad := &Ad{
		Name:        name,
		AuthorID:    authorID,
		Price:       price,
		Description: description,
		CategoryID:  categoryID,
	}
	if err := ad.Validate(); err != nil {
		return nil, err
	}
	return ad, nil
}

// HasImage reports whether an image is attached.
func (a *Ad) HasImage() bool {
	return a.Image != ""
}

// Validate checks if the Ad has valid data.
func (a *Ad) Validate() error {
	var errs ValidationErrors

	if a.Name == "" {
		errs.Add("name", KindRequired, "this field is required")
	} else if utf8.RuneCountInString(a.Name) > maxAdNameLength {
		errs.Add("name", KindInvalid, "must be at most 200 characters")
	}
	if a.Price < 0 {
		errs.Add("price", KindInvalid, "must be a non-negative integer")
	}
	if utf8.RuneCountInString(a.Description) > maxAdDescriptionLength {
		errs.Add("description", KindInvalid, "must be at most 2000 characters")
	}
	if a.AuthorID <= 0 {
		errs.Add("author", KindRequired, "this field is required")
	}
	if a.CategoryID <= 0 {
		errs.Add("category", KindRequired, "this field is required")
	}

	return errs.Err()
}

// AdPatch carries the fields of an ad update. Nil fields are left unchanged.
type AdPatch struct {
	Name        *string
	AuthorID    *int64
	Price       *int64
	Description *string
	IsPublished *bool
	CategoryID  *int64
}

// Empty reports whether the patch changes nothing.
func (p AdPatch) Empty() bool {
	return p.Name == nil && p.AuthorID == nil && p.Price == nil &&
		p.Description == nil && p.IsPublished == nil && p.CategoryID == nil
}

// Apply copies the set fields of p onto the ad and validates the result.
// On validation failure the ad is left untouched.
func (a *Ad) Apply(p AdPatch) error {
	updated := *a
	if p.Name != nil {
		updated.Name = *p.Name
	}
	if p.AuthorID != nil && *p.AuthorID != updated.AuthorID {
		updated.AuthorID = *p.AuthorID
		updated.AuthorUsername = ""
	}
	if p.Price != nil {
		updated.Price = *p.Price
	}
	if p.Description != nil {
		updated.Description = *p.Description
	}
	if p.IsPublished != nil {
		updated.IsPublished = *p.IsPublished
	}
	if p.CategoryID != nil && *p.CategoryID != updated.CategoryID {
		updated.CategoryID = *p.CategoryID
		updated.CategoryName = ""
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	*a = updated
	return nil
}
