package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adboard/adboard-api/internal/authz"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/mocks"
	"github.com/adboard/adboard-api/internal/service"
	"github.com/adboard/adboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	users     *mocks.MockUserStore
	locations *mocks.MockLocationStore
	tx        *mocks.NoopTransactor
	svc       service.UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:     mocks.NewMockUserStore(),
		locations: mocks.NewMockLocationStore(),
		tx:        &mocks.NoopTransactor{},
	}
	f.users.Locations = f.locations
	f.svc = service.NewUserService(f.users, f.locations, f.tx, nil)
	return f
}

func TestUserService_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates user and attaches new and existing locations", func(t *testing.T) {
		f := newUserFixture()
		existing, _, err := f.locations.GetOrCreate(context.Background(), "Berlin")
		require.NoError(t, err)

		u, err := f.svc.Create(context.Background(), authz.Actor{}, body(t,
			`{"username":"alice","password":"secret123","locations":["Paris","Berlin","Paris"]}`))

		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, domain.RoleMember, u.Role)
		assert.Equal(t, []string{"Berlin", "Paris"}, u.Locations)
		assert.Len(t, f.locations.Locations, 2)
		assert.Contains(t, f.users.LocationIDs[u.ID], existing.ID)
		assert.Equal(t, 1, f.tx.Calls)
	})

	t.Run("locations key is required", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.Create(context.Background(), authz.Actor{}, body(t, `{"username":"alice","password":"secret123"}`))

		require.Error(t, err)
		verrs, ok := domain.AsValidationErrors(err)
		require.True(t, ok)
		assert.Contains(t, verrs.Fields(), "locations")
		assert.Empty(t, f.users.Users)
	})

	t.Run("empty locations list skips reconciliation", func(t *testing.T) {
		f := newUserFixture()

		u, err := f.svc.Create(context.Background(), authz.Actor{}, body(t,
			`{"username":"alice","password":"secret123","locations":[]}`))

		require.NoError(t, err)
		assert.Empty(t, u.Locations)
		assert.Zero(t, f.tx.Calls)
	})

	t.Run("signup cannot request admin", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.Create(context.Background(), authz.Actor{}, body(t,
			`{"username":"alice","password":"secret123","role":"admin","locations":[]}`))

		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, f.users.Users)
	})

	t.Run("admin may create an admin", func(t *testing.T) {
		f := newUserFixture()
		admin := authz.Actor{ID: 99, Role: domain.RoleAdmin}

		u, err := f.svc.Create(context.Background(), admin, body(t,
			`{"username":"root","password":"secret123","role":"admin","locations":[]}`))

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, u.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newUserFixture()
		f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})

		_, err := f.svc.Create(context.Background(), authz.Actor{}, body(t,
			`{"username":"alice","password":"secret123","locations":[]}`))

		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("location failure reports a partial write", func(t *testing.T) {
		f := newUserFixture()
		f.locations.GetOrCreateError = errors.New("db down")

		_, err := f.svc.Create(context.Background(), authz.Actor{}, body(t,
			`{"username":"alice","password":"secret123","locations":["Rome"]}`))

		var partial *service.PartialWriteError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, "user", partial.Entity)
		assert.Len(t, f.users.Users, 1)
	})
}

func TestUserService_Update(t *testing.T) {
	t.Parallel()

	t.Run("patch adds locations without removing old ones", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})
		_, err := f.svc.Update(context.Background(), actorOf(u), u.ID, body(t, `{"locations":["Oslo"]}`), true)
		require.NoError(t, err)

		got, err := f.svc.Update(context.Background(), actorOf(u), u.ID, body(t, `{"locations":["Bergen"]}`), true)

		require.NoError(t, err)
		assert.Equal(t, []string{"Bergen", "Oslo"}, got.Locations)
	})

	t.Run("patch without locations keeps the set", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})
		_, err := f.svc.Update(context.Background(), actorOf(u), u.ID, body(t, `{"locations":["Oslo"]}`), true)
		require.NoError(t, err)

		got, err := f.svc.Update(context.Background(), actorOf(u), u.ID, body(t, `{"first_name":"Alice","age":null}`), true)

		require.NoError(t, err)
		assert.Equal(t, "Alice", got.FirstName)
		assert.Nil(t, got.Age)
		assert.Equal(t, []string{"Oslo"}, got.Locations)
	})

	t.Run("put requires username", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})

		_, err := f.svc.Update(context.Background(), actorOf(u), u.ID, body(t, `{"first_name":"Alice"}`), false)

		assert.True(t, domain.HasKind(err, domain.KindRequired))
	})

	t.Run("invalid role", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})

		_, err := f.svc.Update(context.Background(), actorOf(u), u.ID, body(t, `{"role":"owner"}`), true)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})

		_, err := f.svc.Update(context.Background(), authz.Actor{}, u.ID, body(t, `{"first_name":"x"}`), true)

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("another member is forbidden", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})
		other := f.users.Seed(&domain.User{Username: "bob", Role: domain.RoleMember})

		_, err := f.svc.Update(context.Background(), actorOf(other), u.ID, body(t, `{"first_name":"x"}`), true)

		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, f.users.Users[u.ID].FirstName)
	})

	t.Run("member cannot promote themself", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})

		_, err := f.svc.Update(context.Background(), actorOf(u), u.ID, body(t, `{"role":"admin"}`), true)

		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, domain.RoleMember, f.users.Users[u.ID].Role)
	})

	t.Run("member may resend their own role", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})

		got, err := f.svc.Update(context.Background(), actorOf(u), u.ID, body(t, `{"role":"member"}`), true)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleMember, got.Role)
	})

	t.Run("admin can promote", func(t *testing.T) {
		f := newUserFixture()
		u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})
		admin := authz.Actor{ID: 99, Role: domain.RoleAdmin}

		got, err := f.svc.Update(context.Background(), admin, u.ID, body(t, `{"role":"admin"}`), true)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, got.Role)
	})

	t.Run("missing user", func(t *testing.T) {
		f := newUserFixture()

		admin := authz.Actor{ID: 1, Role: domain.RoleAdmin}

		_, err := f.svc.Update(context.Background(), admin, 7, body(t, `{}`), true)

		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Parallel()
	f := newUserFixture()
	u := f.users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})

	other := f.users.Seed(&domain.User{Username: "bob", Role: domain.RoleMember})
	admin := authz.Actor{ID: 99, Role: domain.RoleAdmin}

	assert.ErrorIs(t, f.svc.Delete(context.Background(), authz.Actor{}, u.ID), domain.ErrUnauthorized)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), actorOf(other), u.ID), domain.ErrForbidden)
	assert.Len(t, f.users.Users, 2)

	require.NoError(t, f.svc.Delete(context.Background(), actorOf(u), u.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), admin, u.ID), store.ErrUserNotFound)
}
