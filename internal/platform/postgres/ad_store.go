package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/adboard/adboard-api/internal/store"
)

// PostgresAdStore implements the store.AdStore interface.
type PostgresAdStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAdStore creates a new PostgreSQL implementation of the AdStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAdStore(db store.DBTX, logger *slog.Logger) *PostgresAdStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAdStore{
		db:     db,
		logger: logger.With(slog.String("component", "ad_store")),
	}
}

var _ store.AdStore = (*PostgresAdStore)(nil)

const adSelect = `
	SELECT a.id, a.name, a.author_id, a.price, a.description, a.is_published,
		a.image, a.category_id, u.username, c.name
	FROM ads a
	JOIN users u ON u.id = a.author_id
	JOIN categories c ON c.id = a.category_id
`

func scanAd(row interface{ Scan(dest ...any) error }) (*domain.Ad, error) {
	var ad domain.Ad
	err := row.Scan(
		&ad.ID,
		&ad.Name,
		&ad.AuthorID,
		&ad.Price,
		&ad.Description,
		&ad.IsPublished,
		&ad.Image,
		&ad.CategoryID,
		&ad.AuthorUsername,
		&ad.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// Create implements store.AdStore.Create
func (s *PostgresAdStore) Create(ctx context.Context, ad *domain.Ad) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ad.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO ads (name, author_id, price, description, is_published, image, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		ad.Name, ad.AuthorID, ad.Price, ad.Description, ad.IsPublished, ad.Image, ad.CategoryID,
	).Scan(&ad.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("ad references a missing author or category",
				slog.Int64("author_id", ad.AuthorID),
				slog.Int64("category_id", ad.CategoryID))
		} else {
			log.Error("failed to create ad", slog.String("error", err.Error()))
		}
		return MapError(err)
	}

	if err := s.refresh(ctx, ad); err != nil {
		return err
	}

	log.Info("ad created",
		slog.Int64("ad_id", ad.ID),
		slog.Int64("author_id", ad.AuthorID))
	return nil
}

// refresh reloads ad from the database, picking up the related slugs.
func (s *PostgresAdStore) refresh(ctx context.Context, ad *domain.Ad) error {
	loaded, err := s.GetByID(ctx, ad.ID)
	if err != nil {
		return err
	}
	*ad = *loaded
	return nil
}

// GetByID implements store.AdStore.GetByID
func (s *PostgresAdStore) GetByID(ctx context.Context, id int64) (*domain.Ad, error) {
	ad, err := scanAd(s.db.QueryRowContext(ctx, adSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAdNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get ad",
			slog.String("error", err.Error()),
			slog.Int64("ad_id", id))
		return nil, MapError(err)
	}
	return ad, nil
}

// GetByIDs implements store.AdStore.GetByIDs
func (s *PostgresAdStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Ad, error) {
	if len(ids) == 0 {
		return []*domain.Ad{}, nil
	}

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	query := adSelect + ` WHERE a.id IN (` + placeholders(1, len(ids)) + `)`

	found, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Ad, len(found))
	for _, ad := range found {
		byID[ad.ID] = ad
	}
	ordered := make([]*domain.Ad, 0, len(found))
	for _, id := range ids {
		if ad, ok := byID[id]; ok {
			ordered = append(ordered, ad)
			delete(byID, id)
		}
	}
	return ordered, nil
}

// List implements store.AdStore.List
func (s *PostgresAdStore) List(ctx context.Context, filter store.AdFilter) ([]*domain.Ad, error) {
	where, args := buildAdFilter(filter)
	return s.query(ctx, adSelect+where+` ORDER BY a.id`, args...)
}

func (s *PostgresAdStore) query(ctx context.Context, query string, args ...any) ([]*domain.Ad, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query ads",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ads := []*domain.Ad{}
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	return ads, rows.Err()
}

// buildAdFilter renders filter as a WHERE clause with positional arguments.
func buildAdFilter(filter store.AdFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.CategoryIDs) > 0 {
		refs := make([]string, 0, len(filter.CategoryIDs))
		for _, id := range filter.CategoryIDs {
			refs = append(refs, next(id))
		}
		conds = append(conds, "a.category_id IN ("+strings.Join(refs, ", ")+")")
	}
	if filter.Name != "" {
		conds = append(conds, `a.name ILIKE `+next(containsPattern(filter.Name))+` ESCAPE '\'`)
	}
	if filter.Location != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM user_locations ul
			JOIN locations l ON l.id = ul.location_id
			WHERE ul.user_id = a.author_id AND l.name ILIKE `+next(containsPattern(filter.Location))+` ESCAPE '\'
		)`)
	}
	if filter.PriceFrom != nil {
		conds = append(conds, "a.price >= "+next(*filter.PriceFrom))
	}
	if filter.PriceTo != nil {
		conds = append(conds, "a.price <= "+next(*filter.PriceTo))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// placeholders returns "$start, $start+1, ..." for n arguments.
func placeholders(start, n int) string {
	refs := make([]string, n)
	for i := range refs {
		refs[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(refs, ", ")
}

// Update implements store.AdStore.Update
func (s *PostgresAdStore) Update(ctx context.Context, ad *domain.Ad) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ad.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE ads
		SET name = $1, author_id = $2, price = $3, description = $4,
			is_published = $5, image = $6, category_id = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(ctx, query,
		ad.Name, ad.AuthorID, ad.Price, ad.Description, ad.IsPublished, ad.Image, ad.CategoryID, ad.ID,
	)
	if err != nil {
		log.Error("failed to update ad",
			slog.String("error", err.Error()),
			slog.Int64("ad_id", ad.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAdNotFound); err != nil {
		return err
	}
	if err := s.refresh(ctx, ad); err != nil {
		return err
	}

	log.Info("ad updated", slog.Int64("ad_id", ad.ID))
	return nil
}

// Delete implements store.AdStore.Delete. Selection memberships cascade.
func (s *PostgresAdStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete ad",
			slog.String("error", err.Error()),
			slog.Int64("ad_id", id))
		return MapDeleteError(err)
	}
	if err := CheckRowsAffected(result, store.ErrAdNotFound); err != nil {
		return err
	}

	log.Info("ad deleted", slog.Int64("ad_id", id))
	return nil
}
