package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/adboard/adboard-api/internal/authz"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/store"
)

// SelectionService provides selection operations.
type SelectionService interface {
	// List returns all selections without items.
	List(ctx context.Context) ([]*domain.Selection, error)

	// Get returns a selection and its ads in item order.
	Get(ctx context.Context, id int64) (*domain.Selection, []*domain.Ad, error)

	// Create stores a selection from a full payload. Members may only create
	// selections they own.
	Create(ctx context.Context, actor authz.Actor, fields serializer.Fields) (*domain.Selection, error)

	// Update applies a PUT (partial=false) or PATCH body to a selection the
	// actor may mutate.
	Update(ctx context.Context, actor authz.Actor, id int64, fields serializer.Fields, partial bool) (*domain.Selection, error)

	// Delete removes a selection the actor may mutate.
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

type selectionService struct {
	selections store.SelectionStore
	ads        store.AdStore
	users      store.UserStore
	tx         store.Transactor
	logger     *slog.Logger
}

// NewSelectionService creates a SelectionService.
func NewSelectionService(
	selections store.SelectionStore,
	ads store.AdStore,
	users store.UserStore,
	tx store.Transactor,
	logger *slog.Logger,
) SelectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &selectionService{
		selections: selections,
		ads:        ads,
		users:      users,
		tx:         tx,
		logger:     logger.With(slog.String("component", "selection_service")),
	}
}

func (s *selectionService) List(ctx context.Context) ([]*domain.Selection, error) {
	return s.selections.List(ctx)
}

func (s *selectionService) Get(ctx context.Context, id int64) (*domain.Selection, []*domain.Ad, error) {
	sel, err := s.selections.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ads, err := s.ads.GetByIDs(ctx, sel.Items)
	if err != nil {
		return nil, nil, err
	}
	return sel, ads, nil
}

func (s *selectionService) Create(
	ctx context.Context,
	actor authz.Actor,
	fields serializer.Fields,
) (*domain.Selection, error) {
	if err := authz.Chain(authz.Authenticated(actor)); err != nil {
		return nil, err
	}

	w, err := serializer.DecodeSelection(fields, false)
	if err != nil {
		return nil, err
	}
	sel, err := domain.NewSelection(*w.Name, *w.Owner, *w.Items)
	if err != nil {
		return nil, err
	}
	if err := authz.Chain(authz.SelectionOwnerOrAdmin(actor, sel)); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, sel); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.withTx(tx).Create(ctx, sel)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("selection created",
		slog.Int64("selection_id", sel.ID),
		slog.Int64("owner_id", sel.OwnerID))
	return sel, nil
}

func (s *selectionService) loadForMutation(ctx context.Context, actor authz.Actor, id int64) (*domain.Selection, error) {
	if err := authz.Chain(authz.Authenticated(actor)); err != nil {
		return nil, err
	}
	sel, err := s.selections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Chain(authz.SelectionOwnerOrAdmin(actor, sel)); err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *selectionService) Update(
	ctx context.Context,
	actor authz.Actor,
	id int64,
	fields serializer.Fields,
	partial bool,
) (*domain.Selection, error) {
	sel, err := s.loadForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	w, err := serializer.DecodeSelection(fields, partial)
	if err != nil {
		return nil, err
	}
	if err := sel.Apply(w.Patch()); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, sel); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.withTx(tx).Update(ctx, sel)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("selection updated",
		slog.Int64("selection_id", sel.ID),
		slog.Int64("actor_id", actor.ID))
	return sel, nil
}

func (s *selectionService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if _, err := s.loadForMutation(ctx, actor, id); err != nil {
		return err
	}
	if err := s.selections.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("selection deleted",
		slog.Int64("selection_id", id),
		slog.Int64("actor_id", actor.ID))
	return nil
}

func (s *selectionService) withTx(tx *sql.Tx) store.SelectionStore {
	if tx == nil {
		return s.selections
	}
	return s.selections.WithTx(tx)
}

// checkReferences reports a missing owner or missing ads as field errors.
func (s *selectionService) checkReferences(ctx context.Context, sel *domain.Selection) error {
	var errs domain.ValidationErrors

	if _, err := s.users.GetByID(ctx, sel.OwnerID); err != nil {
		if !store.IsNotFoundError(err) {
			return err
		}
		errs.Add("owner", domain.KindNotFound, fmt.Sprintf("user with id %d does not exist", sel.OwnerID))
	}

	if len(sel.Items) > 0 {
		found, err := s.ads.GetByIDs(ctx, sel.Items)
		if err != nil {
			return err
		}
		present := make(map[int64]bool, len(found))
		for _, ad := range found {
			present[ad.ID] = true
		}
		for _, id := range sel.Items {
			if !present[id] {
				errs.Add("items", domain.KindNotFound, fmt.Sprintf("ad with id %d does not exist", id))
				break
			}
		}
	}

	return errs.Err()
}
