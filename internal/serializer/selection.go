package serializer

import "github.com/adboard/adboard-api/internal/domain"

// SelectionListView omits the items.
type SelectionListView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Owner int64  `json:"owner"`
}

// NewSelectionListViews renders selections for the list endpoint.
func NewSelectionListViews(selections []*domain.Selection) []SelectionListView {
	views := make([]SelectionListView, 0, len(selections))
	for _, s := range selections {
		views = append(views, SelectionListView{ID: s.ID, Name: s.Name, Owner: s.OwnerID})
	}
	return views
}

// SelectionView lists items as ad ids.
type SelectionView struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Owner int64   `json:"owner"`
	Items []int64 `json:"items"`
}

// NewSelectionView renders s with item ids.
func NewSelectionView(s *domain.Selection) SelectionView {
	items := s.Items
	if items == nil {
		items = []int64{}
	}
	return SelectionView{ID: s.ID, Name: s.Name, Owner: s.OwnerID, Items: items}
}

// SelectionDetailView embeds the full ad views.
type SelectionDetailView struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Owner int64    `json:"owner"`
	Items []AdView `json:"items"`
}

// NewSelectionDetailView renders s with its loaded ads.
func NewSelectionDetailView(s *domain.Selection, ads []*domain.Ad, url ImageURL) SelectionDetailView {
	return SelectionDetailView{ID: s.ID, Name: s.Name, Owner: s.OwnerID, Items: NewAdViews(ads, url)}
}

// SelectionWrite holds submitted selection fields. Nil fields were not sent.
type SelectionWrite struct {
	Name  *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Owner *int64   `json:"owner" validate:"omitnil,gt=0"`
	Items *[]int64 `json:"items" validate:"omitnil,dive,gt=0"`
}

// Patch converts w into a domain patch.
func (w SelectionWrite) Patch() domain.SelectionPatch {
	return domain.SelectionPatch{Name: w.Name, OwnerID: w.Owner, Items: w.Items}
}

// DecodeSelection decodes selection input. Unless partial, name, owner and
// items are all required; items may be an empty list.
func DecodeSelection(fields Fields, partial bool) (SelectionWrite, error) {
	r := &reader{f: fields}
	required := !partial

	w := SelectionWrite{
		Name:  r.str("name", required),
		Owner: r.int("owner", required),
		Items: r.ids("items", required),
	}
	if w.Items != nil {
		unique := domain.UniqueIDs(*w.Items)
		w.Items = &unique
	}

	if err := checkStruct(w, &r.errs); err != nil {
		return SelectionWrite{}, err
	}
	if err := r.errs.Err(); err != nil {
		return SelectionWrite{}, err
	}
	return w, nil
}
