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

func TestPostgresCategoryStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresCategoryStore(db, nil)

	mock.ExpectQuery(`INSERT INTO categories`).WithArgs("bikes").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO categories`).WithArgs("bikes").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "categories_name_key"})

	c := &domain.Category{Name: "bikes"}
	require.NoError(t, s.Create(context.Background(), c))
	assert.Equal(t, int64(1), c.ID)

	err := s.Create(context.Background(), &domain.Category{Name: "bikes"})
	assert.ErrorIs(t, err, store.ErrCategoryExists)
}

func TestPostgresCategoryStore_Delete_Referenced(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresCategoryStore(db, nil)

	mock.ExpectExec(`DELETE FROM categories`).WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "ads_category_id_fkey"})

	assert.ErrorIs(t, s.Delete(context.Background(), 1), store.ErrReferenced)
}

func TestPostgresCategoryStore_GetByName_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresCategoryStore(db, nil)

	mock.ExpectQuery(`FROM categories WHERE name = \$1`).WithArgs("cars").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := s.GetByName(context.Background(), "cars")
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}
