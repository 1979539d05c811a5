package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryEndpoints(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/cat/create/", `{"name":"books"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	books := decodeBody[serializer.CategoryView](t, rec)
	assert.Equal(t, "books", books.Name)

	rec = h.do(t, http.MethodPost, "/cat/create/", `{"name":"books"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, shared.KindConflict, decodeError(t, rec).Kind)

	rec = h.do(t, http.MethodPost, "/cat/create/", `{"name":""}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Fields, "name")

	rec = h.do(t, http.MethodGet, "/cat/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]serializer.CategoryView](t, rec), 2)

	rec = h.do(t, http.MethodGet, fmt.Sprintf("/cat/%d/", books.ID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, books, decodeBody[serializer.CategoryView](t, rec))

	rec = h.do(t, http.MethodDelete, fmt.Sprintf("/cat/%d/delete/", books.ID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, fmt.Sprintf("/cat/%d/", books.ID), "", "").Code)
}

func TestCategoryDelete_Referenced(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.categories.DeleteFn = func(ctx context.Context, id int64) error {
		return fmt.Errorf("category %d: %w", id, store.ErrReferenced)
	}

	rec := h.do(t, http.MethodDelete, fmt.Sprintf("/cat/%d/delete/", h.bikes.ID), "", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLocationEndpoints(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/location/", `{"name":"Berlin","lat":52.52,"lng":13.4}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	berlin := decodeBody[serializer.LocationView](t, rec)
	require.NotNil(t, berlin.Lat)
	assert.InDelta(t, 52.52, *berlin.Lat, 1e-9)

	rec = h.do(t, http.MethodPost, "/location/", `{"name":"Berlin"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(t, http.MethodPost, "/location/", `{"name":"Nowhere","lat":120}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Fields, "lat")

	path := fmt.Sprintf("/location/%d/", berlin.ID)
	rec = h.do(t, http.MethodPatch, path, `{"lat":null}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decodeBody[serializer.LocationView](t, rec)
	assert.Equal(t, "Berlin", patched.Name)
	assert.Nil(t, patched.Lat)
	require.NotNil(t, patched.Lng)

	rec = h.do(t, http.MethodPut, path, `{"lng":1}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Fields, "name")

	rec = h.do(t, http.MethodGet, "/location/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]serializer.LocationView](t, rec), 1)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodDelete, path, "", "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, path, "", "").Code)
}

func TestUnknownIDShapesAreNotRouted(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/cat/abc/", "", "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/location/-1/", "", "").Code)
}
