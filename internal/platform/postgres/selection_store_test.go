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

func TestPostgresSelectionStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSelectionStore(db, nil)

	mock.ExpectQuery(`INSERT INTO selections`).WithArgs("Favourites", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectExec(`INSERT INTO selection_items`).WithArgs(int64(4), int64(10), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO selection_items`).WithArgs(int64(4), int64(12), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sel := &domain.Selection{Name: "Favourites", OwnerID: 1, Items: []int64{10, 12}}
	require.NoError(t, s.Create(context.Background(), sel))
	assert.Equal(t, int64(4), sel.ID)
}

func TestPostgresSelectionStore_Create_MissingAd(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSelectionStore(db, nil)

	mock.ExpectQuery(`INSERT INTO selections`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectExec(`INSERT INTO selection_items`).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

	err := s.Create(context.Background(), &domain.Selection{Name: "x", OwnerID: 1, Items: []int64{99}})

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPostgresSelectionStore_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSelectionStore(db, nil)

	mock.ExpectQuery(`FROM selections WHERE id = \$1`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}).AddRow(4, "Favourites", 1))
	mock.ExpectQuery(`SELECT ad_id FROM selection_items`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"ad_id"}).AddRow(12).AddRow(10))

	sel, err := s.GetByID(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, []int64{12, 10}, sel.Items)
	assert.Equal(t, int64(1), sel.OwnerID)
}

func TestPostgresSelectionStore_Update_ReplacesItems(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSelectionStore(db, nil)

	mock.ExpectExec(`UPDATE selections`).WithArgs("Renamed", int64(1), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM selection_items`).WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO selection_items`).WithArgs(int64(4), int64(7), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sel := &domain.Selection{ID: 4, Name: "Renamed", OwnerID: 1, Items: []int64{7}}
	require.NoError(t, s.Update(context.Background(), sel))
}

func TestPostgresSelectionStore_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSelectionStore(db, nil)

	mock.ExpectExec(`DELETE FROM selections`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), 4), store.ErrSelectionNotFound)
}
