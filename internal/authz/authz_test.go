package authz

import (
	"errors"
	"testing"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanMutateAd(t *testing.T) {
	ad := &domain.Ad{ID: 1, AuthorID: 10}

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"author", Actor{ID: 10, Role: domain.RoleMember}, true},
		{"admin", Actor{ID: 99, Role: domain.RoleAdmin}, true},
		{"other member", Actor{ID: 11, Role: domain.RoleMember}, false},
		{"anonymous", Actor{}, false},
		{"anonymous claiming admin", Actor{Role: domain.RoleAdmin}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutateAd(tt.actor, ad))
		})
	}
}

func TestCanMutateSelection(t *testing.T) {
	sel := &domain.Selection{ID: 1, OwnerID: 10}

	assert.True(t, CanMutateSelection(Actor{ID: 10, Role: domain.RoleMember}, sel))
	assert.True(t, CanMutateSelection(Actor{ID: 2, Role: domain.RoleAdmin}, sel))
	assert.False(t, CanMutateSelection(Actor{ID: 2, Role: domain.RoleMember}, sel))
}

func TestChain(t *testing.T) {
	t.Run("empty chain allows", func(t *testing.T) {
		assert.NoError(t, Chain())
	})

	t.Run("short-circuits on first failure", func(t *testing.T) {
		var ran []string
		step := func(name string, err error) Check {
			return func() error {
				ran = append(ran, name)
				return err
			}
		}
		first := errors.New("first")

		err := Chain(step("a", nil), step("b", first), step("c", errors.New("never")))

		assert.Same(t, first, err)
		assert.Equal(t, []string{"a", "b"}, ran)
	})

	t.Run("anonymous is unauthorized before ownership", func(t *testing.T) {
		ad := &domain.Ad{AuthorID: 10}

		err := Chain(Authenticated(Actor{}), AdOwnerOrAdmin(Actor{}, ad))

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		actor := Actor{ID: 11, Role: domain.RoleMember}

		err := Chain(Authenticated(actor), SelectionOwnerOrAdmin(actor, &domain.Selection{OwnerID: 10}))

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUserSelfOrAdmin(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		wantErr error
	}{
		{"self", Actor{ID: 10, Role: domain.RoleMember}, nil},
		{"admin", Actor{ID: 99, Role: domain.RoleAdmin}, nil},
		{"other member", Actor{ID: 11, Role: domain.RoleMember}, domain.ErrForbidden},
		{"anonymous", Actor{}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UserSelfOrAdmin(tt.actor, 10)()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRoleGrant(t *testing.T) {
	member := Actor{ID: 10, Role: domain.RoleMember}
	admin := Actor{ID: 1, Role: domain.RoleAdmin}
	promote := domain.RoleAdmin
	keep := domain.RoleMember

	assert.NoError(t, RoleGrant(member, domain.RoleMember, nil)())
	assert.NoError(t, RoleGrant(member, domain.RoleMember, &keep)())
	assert.ErrorIs(t, RoleGrant(member, domain.RoleMember, &promote)(), domain.ErrForbidden)
	assert.ErrorIs(t, RoleGrant(Actor{}, domain.RoleMember, &promote)(), domain.ErrForbidden)
	assert.NoError(t, RoleGrant(admin, domain.RoleMember, &promote)())
}
