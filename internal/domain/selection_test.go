package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelection(t *testing.T) {
	sel, err := NewSelection("Favourites", 3, []int64{5, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4}, sel.Items)

	empty, err := NewSelection("Empty", 3, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	_, err = NewSelection("", 0, []int64{-1})
	list, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"items", "name", "owner"}, list.FieldNames())
}

func TestSelection_Apply(t *testing.T) {
	sel := Selection{ID: 1, Name: "Favourites", OwnerID: 3, Items: []int64{1, 2}}
	items := []int64{}
	name := "Renamed"

	require.NoError(t, sel.Apply(SelectionPatch{Name: &name, Items: &items}))
	assert.Equal(t, "Renamed", sel.Name)
	assert.Empty(t, sel.Items)
	assert.Equal(t, int64(3), sel.OwnerID)
}

func TestLocation_Validate(t *testing.T) {
	lat, lng := 91.0, 10.0
	loc := Location{Name: "Berlin", Lat: &lat, Lng: &lng}

	list, ok := AsValidationErrors(loc.Validate())
	require.True(t, ok)
	assert.Equal(t, []string{"lat"}, list.FieldNames())

	_, err := NewLocation("")
	assert.True(t, HasKind(err, KindRequired))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("price", KindTypeMismatch, "must be an integer")
	require.NoError(t, errs.Append(NewValidationError("name", KindRequired, "this field is required")))
	assert.Error(t, errs.Append(ErrForbidden), "non-validation errors are passed back")

	err := errs.Err()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, map[string]string{
		"price": "must be an integer",
		"name":  "this field is required",
	}, errs.Fields())
	assert.True(t, HasKind(err, KindTypeMismatch))
	assert.False(t, HasKind(err, KindNotFound))
	assert.Equal(t, "price: must be an integer; name: this field is required", err.Error())
}
