package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/adboard/adboard-api/internal/store"
)

// PostgresSelectionStore implements the store.SelectionStore interface.
// Items live in selection_items, ordered by position.
type PostgresSelectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSelectionStore creates a new PostgreSQL implementation of the SelectionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSelectionStore(db store.DBTX, logger *slog.Logger) *PostgresSelectionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSelectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "selection_store")),
	}
}

var _ store.SelectionStore = (*PostgresSelectionStore)(nil)

// WithTx implements store.SelectionStore.WithTx
func (s *PostgresSelectionStore) WithTx(tx *sql.Tx) store.SelectionStore {
	return &PostgresSelectionStore{db: tx, logger: s.logger}
}

// Create implements store.SelectionStore.Create
func (s *PostgresSelectionStore) Create(ctx context.Context, sel *domain.Selection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sel.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO selections (name, owner_id) VALUES ($1, $2) RETURNING id`,
		sel.Name, sel.OwnerID,
	).Scan(&sel.ID)
	if err != nil {
		log.Error("failed to create selection", slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := s.insertItems(ctx, sel.ID, sel.Items); err != nil {
		return err
	}

	log.Info("selection created",
		slog.Int64("selection_id", sel.ID),
		slog.Int("items", len(sel.Items)))
	return nil
}

func (s *PostgresSelectionStore) insertItems(ctx context.Context, selectionID int64, items []int64) error {
	query := `INSERT INTO selection_items (selection_id, ad_id, position) VALUES ($1, $2, $3)`
	for i, adID := range items {
		if _, err := s.db.ExecContext(ctx, query, selectionID, adID, i); err != nil {
			logger.FromContextOrDefault(ctx, s.logger).Debug("failed to add selection item",
				slog.String("error", err.Error()),
				slog.Int64("selection_id", selectionID),
				slog.Int64("ad_id", adID))
			return MapError(err)
		}
	}
	return nil
}

// GetByID implements store.SelectionStore.GetByID
func (s *PostgresSelectionStore) GetByID(ctx context.Context, id int64) (*domain.Selection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sel domain.Selection
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id FROM selections WHERE id = $1`, id,
	).Scan(&sel.ID, &sel.Name, &sel.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSelectionNotFound
		}
		log.Error("failed to get selection",
			slog.String("error", err.Error()),
			slog.Int64("selection_id", id))
		return nil, MapError(err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT ad_id FROM selection_items WHERE selection_id = $1 ORDER BY position, ad_id`, id)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sel.Items = []int64{}
	for rows.Next() {
		var adID int64
		if err := rows.Scan(&adID); err != nil {
			return nil, err
		}
		sel.Items = append(sel.Items, adID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &sel, nil
}

// List implements store.SelectionStore.List
func (s *PostgresSelectionStore) List(ctx context.Context) ([]*domain.Selection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, owner_id FROM selections ORDER BY id`)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list selections",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	selections := []*domain.Selection{}
	for rows.Next() {
		var sel domain.Selection
		if err := rows.Scan(&sel.ID, &sel.Name, &sel.OwnerID); err != nil {
			return nil, err
		}
		selections = append(selections, &sel)
	}
	return selections, rows.Err()
}

// Update implements store.SelectionStore.Update
func (s *PostgresSelectionStore) Update(ctx context.Context, sel *domain.Selection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sel.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE selections SET name = $1, owner_id = $2 WHERE id = $3`,
		sel.Name, sel.OwnerID, sel.ID,
	)
	if err != nil {
		log.Error("failed to update selection",
			slog.String("error", err.Error()),
			slog.Int64("selection_id", sel.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrSelectionNotFound); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM selection_items WHERE selection_id = $1`, sel.ID); err != nil {
		return MapError(err)
	}
	if err := s.insertItems(ctx, sel.ID, sel.Items); err != nil {
		return err
	}

	log.Info("selection updated", slog.Int64("selection_id", sel.ID))
	return nil
}

// Delete implements store.SelectionStore.Delete. Items cascade.
func (s *PostgresSelectionStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM selections WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete selection",
			slog.String("error", err.Error()),
			slog.Int64("selection_id", id))
		return MapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrSelectionNotFound)
}
