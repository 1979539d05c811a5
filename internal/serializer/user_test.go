package serializer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitUserInput_Create(t *testing.T) {
	f := mustFields(t, `{"username": "alice", "password": "s3cret", "age": 30,
		"locations": ["Berlin", "Paris"], "location": ["ignored"]}`)

	w, locations, err := SplitUserInput(f, UserCreate)

	require.NoError(t, err)
	assert.Equal(t, []string{"Berlin", "Paris"}, locations)

	u := w.NewUser()
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "s3cret", u.Password)
	assert.Equal(t, domain.RoleMember, u.Role)
	require.NotNil(t, u.Age)
	assert.Equal(t, 30, *u.Age)
	assert.Empty(t, u.Locations)
}

func TestSplitUserInput_CreateRequiresLocationsKey(t *testing.T) {
	f := mustFields(t, `{"username": "alice", "password": "s3cret"}`)

	_, _, err := SplitUserInput(f, UserCreate)

	list, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"locations"}, list.FieldNames())
	assert.Equal(t, domain.KindRequired, list[0].Kind)
}

func TestSplitUserInput_UpdateWithoutLocations(t *testing.T) {
	for _, mode := range []UserMode{UserReplace, UserPatch} {
		f := mustFields(t, `{"username": "alice", "first_name": "Al"}`)

		w, locations, err := SplitUserInput(f, mode)

		require.NoError(t, err)
		assert.Nil(t, locations)
		assert.Nil(t, w.Password)
		require.NotNil(t, w.FirstName)
		assert.Equal(t, "Al", *w.FirstName)
	}
}

func TestSplitUserInput_CollectsBothPhases(t *testing.T) {
	f := mustFields(t, `{"locations": "Berlin", "role": "owner", "age": -2}`)

	_, _, err := SplitUserInput(f, UserReplace)

	list, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"age", "locations", "role", "username"}, list.FieldNames())
	assert.Equal(t, `must be one of "member", "admin"`, list.Fields()["role"])
}

func TestSplitUserInput_BlankLocationName(t *testing.T) {
	f := mustFields(t, `{"locations": ["Berlin", ""]}`)

	_, _, err := SplitUserInput(f, UserPatch)

	assert.True(t, domain.HasKind(err, domain.KindInvalid))
}

func TestUserWrite_Apply(t *testing.T) {
	age := 40
	u := &domain.User{Username: "bob", FirstName: "Bob", Age: &age, Role: domain.RoleMember}

	w, _, err := SplitUserInput(mustFields(t, `{"age": null, "role": "admin"}`), UserPatch)
	require.NoError(t, err)
	w.Apply(u)

	assert.Nil(t, u.Age)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "Bob", u.FirstName)
}

func TestUserViews(t *testing.T) {
	u := &domain.User{ID: 1, Username: "alice", HashedPassword: "hash", Role: domain.RoleAdmin,
		Locations: []string{"Berlin"}}

	raw, err := json.Marshal(NewUserDetailView(u))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"username":"alice","first_name":"","last_name":"","age":null,
		"role":"admin","location":["Berlin"]}`, string(raw))

	list := NewUserListViews([]*domain.User{u})
	raw, err = json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"username":"alice","role":"admin"}]`, string(raw))
}

func TestSplitUserInput_AgeRange(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"zero", `{"age": 0}`, false},
		{"column maximum", `{"age": 2147483647}`, false},
		{"negative", `{"age": -1}`, true},
		{"past int32", `{"age": 2147483648}`, true},
		{"wraps to a small int32", `{"age": 4294967301}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, err := SplitUserInput(mustFields(t, tt.body), UserPatch)
			if !tt.wantErr {
				require.NoError(t, err)
				require.NotNil(t, w.Age)
				return
			}
			list, ok := domain.AsValidationErrors(err)
			require.True(t, ok, "expected validation errors, got %v", err)
			assert.Equal(t, []string{"age"}, list.FieldNames())
		})
	}
}

func TestSplitUserInput_PasswordCountsBytes(t *testing.T) {
	// 30 runes, 90 bytes
	long := strings.Repeat("€", 30)

	_, _, err := SplitUserInput(mustFields(t, `{"password": "`+long+`"}`), UserPatch)

	list, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "must be at most 72 bytes", list.Fields()["password"])

	w, _, err := SplitUserInput(mustFields(t, `{"password": "`+strings.Repeat("é", 36)+`"}`), UserPatch)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 36), *w.Password)
}
