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

// PostgresLocationStore implements the store.LocationStore interface.
type PostgresLocationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLocationStore creates a new PostgreSQL implementation of the LocationStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresLocationStore(db store.DBTX, logger *slog.Logger) *PostgresLocationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLocationStore{
		db:     db,
		logger: logger.With(slog.String("component", "location_store")),
	}
}

var _ store.LocationStore = (*PostgresLocationStore)(nil)

// WithTx implements store.LocationStore.WithTx
func (s *PostgresLocationStore) WithTx(tx *sql.Tx) store.LocationStore {
	return &PostgresLocationStore{db: tx, logger: s.logger}
}

// Create implements store.LocationStore.Create
func (s *PostgresLocationStore) Create(ctx context.Context, loc *domain.Location) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := loc.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO locations (name, lat, lng) VALUES ($1, $2, $3) RETURNING id`,
		loc.Name, nullableFloat(loc.Lat), nullableFloat(loc.Lng),
	).Scan(&loc.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("location already exists", slog.String("name", loc.Name))
			return store.ErrLocationExists
		}
		log.Error("failed to create location", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("location created", slog.Int64("location_id", loc.ID), slog.String("name", loc.Name))
	return nil
}

func scanLocation(row interface{ Scan(dest ...any) error }) (*domain.Location, error) {
	var (
		loc      domain.Location
		lat, lng sql.NullFloat64
	)
	if err := row.Scan(&loc.ID, &loc.Name, &lat, &lng); err != nil {
		return nil, err
	}
	if lat.Valid {
		loc.Lat = &lat.Float64
	}
	if lng.Valid {
		loc.Lng = &lng.Float64
	}
	return &loc, nil
}

// GetByID implements store.LocationStore.GetByID
func (s *PostgresLocationStore) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	return s.getOne(ctx, `SELECT id, name, lat, lng FROM locations WHERE id = $1`, id)
}

// GetByName implements store.LocationStore.GetByName
func (s *PostgresLocationStore) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	return s.getOne(ctx, `SELECT id, name, lat, lng FROM locations WHERE name = $1`, name)
}

func (s *PostgresLocationStore) getOne(ctx context.Context, query string, arg any) (*domain.Location, error) {
	loc, err := scanLocation(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLocationNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get location",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return loc, nil
}

// GetOrCreate implements store.LocationStore.GetOrCreate.
//
// The insert is a no-op when the name exists, so concurrent callers never see
// a unique violation. A row that is still missing on the follow-up read was
// deleted in between; that race is reported as store.ErrDuplicate.
func (s *PostgresLocationStore) GetOrCreate(ctx context.Context, name string) (*domain.Location, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	loc, err := domain.NewLocation(name)
	if err != nil {
		return nil, false, err
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO locations (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`,
		name,
	).Scan(&loc.ID)
	switch {
	case err == nil:
		log.Info("location created", slog.Int64("location_id", loc.ID), slog.String("name", name))
		return loc, true, nil
	case !errors.Is(err, sql.ErrNoRows):
		log.Error("failed to get or create location", slog.String("error", err.Error()))
		return nil, false, MapError(err)
	}

	existing, err := s.GetByName(ctx, name)
	if errors.Is(err, store.ErrLocationNotFound) {
		log.Warn("location vanished during get-or-create", slog.String("name", name))
		return nil, false, store.ErrLocationExists
	}
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// List implements store.LocationStore.List
func (s *PostgresLocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, lat, lng FROM locations ORDER BY id`)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list locations",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	locations := []*domain.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// Update implements store.LocationStore.Update
func (s *PostgresLocationStore) Update(ctx context.Context, loc *domain.Location) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := loc.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE locations SET name = $1, lat = $2, lng = $3 WHERE id = $4`,
		loc.Name, nullableFloat(loc.Lat), nullableFloat(loc.Lng), loc.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrLocationExists
		}
		log.Error("failed to update location",
			slog.String("error", err.Error()),
			slog.Int64("location_id", loc.ID))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrLocationNotFound)
}

// Delete implements store.LocationStore.Delete. User associations cascade.
func (s *PostgresLocationStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete location",
			slog.String("error", err.Error()),
			slog.Int64("location_id", id))
		return MapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrLocationNotFound)
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
