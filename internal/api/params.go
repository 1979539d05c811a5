package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/adboard/adboard-api/internal/store"
	"github.com/go-chi/chi/v5"
)

// pathID reads the positive integer id path parameter. Anything else is
// reported as not found, the same as an id with no row.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", store.ErrNotFound, raw)
	}
	return id, nil
}

// isPartial reports whether r is a PATCH, which updates only the submitted
// fields; PUT replaces.
func isPartial(r *http.Request) bool {
	return r.Method == http.MethodPatch
}
