package serializer

import "github.com/adboard/adboard-api/internal/domain"

// LocationView renders a location.
type LocationView struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// NewLocationView renders loc.
func NewLocationView(loc *domain.Location) LocationView {
	return LocationView{ID: loc.ID, Name: loc.Name, Lat: loc.Lat, Lng: loc.Lng}
}

// NewLocationViews renders locations.
func NewLocationViews(locations []*domain.Location) []LocationView {
	views := make([]LocationView, 0, len(locations))
	for _, loc := range locations {
		views = append(views, NewLocationView(loc))
	}
	return views
}

// LocationWrite holds submitted location fields. Lat and Lng may be
// cleared with null, which LatSet/LngSet distinguish from absence.
type LocationWrite struct {
	Name   *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Lat    *float64 `json:"lat" validate:"omitnil,gte=-90,lte=90"`
	LatSet bool     `json:"-"`
	Lng    *float64 `json:"lng" validate:"omitnil,gte=-180,lte=180"`
	LngSet bool     `json:"-"`
}

// Apply copies the submitted fields onto loc.
func (w LocationWrite) Apply(loc *domain.Location) {
	if w.Name != nil {
		loc.Name = *w.Name
	}
	if w.LatSet {
		loc.Lat = w.Lat
	}
	if w.LngSet {
		loc.Lng = w.Lng
	}
}

// DecodeLocation decodes location input; name is required unless partial.
func DecodeLocation(fields Fields, partial bool) (LocationWrite, error) {
	r := &reader{f: fields}

	w := LocationWrite{Name: r.str("name", !partial)}
	w.Lat, w.LatSet = r.nullableFloat("lat")
	w.Lng, w.LngSet = r.nullableFloat("lng")

	if err := checkStruct(w, &r.errs); err != nil {
		return LocationWrite{}, err
	}
	if err := r.errs.Err(); err != nil {
		return LocationWrite{}, err
	}
	return w, nil
}

// CategoryView renders a category.
type CategoryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategoryView renders c.
func NewCategoryView(c *domain.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name}
}

// NewCategoryViews renders categories.
func NewCategoryViews(categories []*domain.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, NewCategoryView(c))
	}
	return views
}

// CategoryWrite is the category create payload.
type CategoryWrite struct {
	Name string `json:"name" validate:"min=1,max=100"`
}

// DecodeCategory decodes category input; name is required.
func DecodeCategory(fields Fields) (CategoryWrite, error) {
	r := &reader{f: fields}
	name := r.str("name", true)
	if err := r.errs.Err(); err != nil {
		return CategoryWrite{}, err
	}

	w := CategoryWrite{Name: *name}
	if err := checkStruct(w, &r.errs); err != nil {
		return CategoryWrite{}, err
	}
	if err := r.errs.Err(); err != nil {
		return CategoryWrite{}, err
	}
	return w, nil
}
