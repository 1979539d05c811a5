package serializer

import (
	"context"
	"fmt"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/store"
)

// ImageURL maps a stored image key to its public URL.
type ImageURL func(key string) string

func imageURL(key string, url ImageURL) *string {
	if key == "" {
		return nil
	}
	if url == nil {
		return &key
	}
	u := url(key)
	return &u
}

// AdView is the representation used by ad list, update and image upload.
type AdView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Author      string  `json:"author"`
	Price       int64   `json:"price"`
	Description string  `json:"description"`
	IsPublished bool    `json:"is_published"`
	Image       *string `json:"image"`
	Category    string  `json:"category"`
}

// NewAdView renders ad.
func NewAdView(ad *domain.Ad, url ImageURL) AdView {
	return AdView{
		ID:          ad.ID,
		Name:        ad.Name,
		Author:      ad.AuthorUsername,
		Price:       ad.Price,
		Description: ad.Description,
		IsPublished: ad.IsPublished,
		Image:       imageURL(ad.Image, url),
		Category:    ad.CategoryName,
	}
}

// NewAdViews renders ads, never returning nil.
func NewAdViews(ads []*domain.Ad, url ImageURL) []AdView {
	views := make([]AdView, 0, len(ads))
	for _, ad := range ads {
		views = append(views, NewAdView(ad, url))
	}
	return views
}

// AdDetailView adds the related ids to AdView.
type AdDetailView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	AuthorID    int64   `json:"author_id"`
	Author      string  `json:"author"`
	Price       int64   `json:"price"`
	Description string  `json:"description"`
	IsPublished bool    `json:"is_published"`
	CategoryID  int64   `json:"category_id"`
	Category    string  `json:"category"`
	Image       *string `json:"image"`
}

// NewAdDetailView renders ad for the retrieve endpoint.
func NewAdDetailView(ad *domain.Ad, url ImageURL) AdDetailView {
	return AdDetailView{
		ID:          ad.ID,
		Name:        ad.Name,
		AuthorID:    ad.AuthorID,
		Author:      ad.AuthorUsername,
		Price:       ad.Price,
		Description: ad.Description,
		IsPublished: ad.IsPublished,
		CategoryID:  ad.CategoryID,
		Category:    ad.CategoryName,
		Image:       imageURL(ad.Image, url),
	}
}

// AdCreatedView is the create response. It carries the category id but
// not the category name.
type AdCreatedView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	AuthorID    int64   `json:"author_id"`
	Author      string  `json:"author"`
	Price       int64   `json:"price"`
	Description string  `json:"description"`
	IsPublished bool    `json:"is_published"`
	CategoryID  int64   `json:"category_id"`
	Image       *string `json:"image"`
}

// NewAdCreatedView renders a freshly created ad.
func NewAdCreatedView(ad *domain.Ad, url ImageURL) AdCreatedView {
	return AdCreatedView{
		ID:          ad.ID,
		Name:        ad.Name,
		AuthorID:    ad.AuthorID,
		Author:      ad.AuthorUsername,
		Price:       ad.Price,
		Description: ad.Description,
		IsPublished: ad.IsPublished,
		CategoryID:  ad.CategoryID,
		Image:       imageURL(ad.Image, url),
	}
}

// DeleteAck is returned by delete endpoints.
type DeleteAck struct {
	ID int64 `json:"id"`
}

// AuthorLookup returns the id of the user with the given username.
// It returns an error wrapping store.ErrNotFound when there is none.
type AuthorLookup func(ctx context.Context, username string) (int64, error)

// CategoryLookup returns the id of the category with the given name.
// It returns an error wrapping store.ErrNotFound when there is none.
type CategoryLookup func(ctx context.Context, name string) (int64, error)

// AdLookups resolves the slug relations of ad input.
type AdLookups struct {
	Author   AuthorLookup
	Category CategoryLookup
}

// ResolveAuthor resolves username through lookup. A missing user becomes a
// not_found field error on "author"; other lookup failures are returned as is.
func ResolveAuthor(ctx context.Context, lookup AuthorLookup, username string) (int64, error) {
	id, err := lookup(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			return 0, domain.NewValidationError("author", domain.KindNotFound,
				fmt.Sprintf("user with username %q does not exist", username))
		}
		return 0, err
	}
	return id, nil
}

// ResolveCategory resolves a category name through lookup. A missing category
// becomes a not_found field error on "category".
func ResolveCategory(ctx context.Context, lookup CategoryLookup, name string) (int64, error) {
	id, err := lookup(ctx, name)
	if err != nil {
		if store.IsNotFoundError(err) {
			return 0, domain.NewValidationError("category", domain.KindNotFound,
				fmt.Sprintf("category with name %q does not exist", name))
		}
		return 0, err
	}
	return id, nil
}

type adWrite struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=200"`
	Price       *int64  `json:"price" validate:"omitnil,gte=0"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
}

// DecodeAdPatch decodes an ad update. With partial false (PUT) name, price,
// description and is_published are required; with partial true (PATCH) any
// subset may be sent. The optional author and category slugs are resolved
// through lookups; they may be omitted but not set to null.
func DecodeAdPatch(ctx context.Context, fields Fields, partial bool, lookups AdLookups) (domain.AdPatch, error) {
	r := &reader{f: fields}
	required := !partial

	patch := domain.AdPatch{
		Name:        r.str("name", required),
		Price:       r.int("price", required),
		Description: r.str("description", required),
		IsPublished: r.bool("is_published", required),
	}
	if err := checkStruct(adWrite{Name: patch.Name, Price: patch.Price, Description: patch.Description}, &r.errs); err != nil {
		return domain.AdPatch{}, err
	}

	if username := r.str("author", false); username != nil {
		id, err := ResolveAuthor(ctx, lookups.Author, *username)
		if err := r.errs.Append(err); err != nil {
			return domain.AdPatch{}, err
		}
		if id > 0 {
			patch.AuthorID = &id
		}
	}
	if name := r.str("category", false); name != nil {
		id, err := ResolveCategory(ctx, lookups.Category, *name)
		if err := r.errs.Append(err); err != nil {
			return domain.AdPatch{}, err
		}
		if id > 0 {
			patch.CategoryID = &id
		}
	}

	if err := r.errs.Err(); err != nil {
		return domain.AdPatch{}, err
	}
	return patch, nil
}

// AdCreateInput is the ad create contract. Relations are given by id.
type AdCreateInput struct {
	Name        string `json:"name" validate:"min=1,max=200"`
	AuthorID    int64  `json:"author_id" validate:"gt=0"`
	Price       int64  `json:"price" validate:"gte=0"`
	Description string `json:"description" validate:"max=2000"`
	IsPublished bool   `json:"is_published"`
	CategoryID  int64  `json:"category_id" validate:"gt=0"`
}

// DecodeAdCreate decodes the ad create contract. Every key is required;
// description may be blank.
func DecodeAdCreate(fields Fields) (AdCreateInput, error) {
	r := &reader{f: fields}

	name := r.str("name", true)
	authorID := r.int("author_id", true)
	price := r.int("price", true)
	description := r.str("description", true)
	published := r.bool("is_published", true)
	categoryID := r.int("category_id", true)

	if err := r.errs.Err(); err != nil {
		return AdCreateInput{}, err
	}

	in := AdCreateInput{
		Name:        *name,
		AuthorID:    *authorID,
		Price:       *price,
		Description: *description,
		IsPublished: *published,
		CategoryID:  *categoryID,
	}
	if err := checkStruct(in, &r.errs); err != nil {
		return AdCreateInput{}, err
	}
	if err := r.errs.Err(); err != nil {
		return AdCreateInput{}, err
	}
	return in, nil
}
