package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var locationColumns = []string{"id", "name", "lat", "lng"}

func TestPostgresLocationStore_GetOrCreate(t *testing.T) {
	t.Run("inserts missing location", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresLocationStore(db, nil)

		mock.ExpectQuery(`INSERT INTO locations \(name\) VALUES \(\$1\) ON CONFLICT \(name\) DO NOTHING RETURNING id`).
			WithArgs("Berlin").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		loc, created, err := s.GetOrCreate(context.Background(), "Berlin")

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(3), loc.ID)
		assert.Equal(t, "Berlin", loc.Name)
	})

	t.Run("reuses existing location", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresLocationStore(db, nil)

		mock.ExpectQuery(`INSERT INTO locations`).WithArgs("Paris").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`FROM locations WHERE name = \$1`).WithArgs("Paris").
			WillReturnRows(sqlmock.NewRows(locationColumns).AddRow(5, "Paris", 48.85, 2.35))

		loc, created, err := s.GetOrCreate(context.Background(), "Paris")

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(5), loc.ID)
		require.NotNil(t, loc.Lat)
		assert.InDelta(t, 48.85, *loc.Lat, 1e-9)
	})

	t.Run("concurrent delete is a retryable conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresLocationStore(db, nil)

		mock.ExpectQuery(`INSERT INTO locations`).WithArgs("Rome").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`FROM locations WHERE name = \$1`).WithArgs("Rome").
			WillReturnRows(sqlmock.NewRows(locationColumns))

		_, _, err := s.GetOrCreate(context.Background(), "Rome")

		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("invalid name never reaches the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresLocationStore(db, nil)

		_, _, err := s.GetOrCreate(context.Background(), "")

		assert.True(t, domain.HasKind(err, domain.KindRequired))
	})
}

func TestPostgresLocationStore_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresLocationStore(db, nil)

	mock.ExpectQuery(`INSERT INTO locations`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err := s.Create(context.Background(), &domain.Location{Name: "Berlin"})

	assert.ErrorIs(t, err, store.ErrLocationExists)
}

func TestPostgresLocationStore_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresLocationStore(db, nil)

	mock.ExpectExec(`UPDATE locations`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), &domain.Location{ID: 9, Name: "Oslo"})

	assert.ErrorIs(t, err, store.ErrLocationNotFound)
}

func TestPostgresLocationStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresLocationStore(db, nil)

	mock.ExpectQuery(`SELECT id, name, lat, lng FROM locations ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(locationColumns).
			AddRow(1, "Berlin", nil, nil).
			AddRow(2, "Paris", 48.85, 2.35))

	locations, err := s.List(context.Background())

	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Nil(t, locations[0].Lat)
	assert.NotNil(t, locations[1].Lng)
}
