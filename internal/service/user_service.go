package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/adboard/adboard-api/internal/authz"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/store"
)

// UserService provides user operations, including reconciliation of the
// locations side channel.
type UserService interface {
	// List returns all users.
	List(ctx context.Context) ([]*domain.User, error)

	// Get returns a user with their location names.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// Create stores a user from a create payload and attaches the submitted
	// locations, creating any that do not exist yet. Only an admin actor may
	// sign up a user with a role other than member.
	Create(ctx context.Context, actor authz.Actor, fields serializer.Fields) (*domain.User, error)

	// Update applies a PUT (partial=false) or PATCH body for the user
	// themself or an admin. Submitted locations are added to the user's set;
	// without the key the set is unchanged. Only an admin may change role.
	Update(ctx context.Context, actor authz.Actor, id int64, fields serializer.Fields, partial bool) (*domain.User, error)

	// Delete removes a user on behalf of the user themself or an admin.
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

type userService struct {
	users     store.UserStore
	locations store.LocationStore
	tx        store.Transactor
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	users store.UserStore,
	locations store.LocationStore,
	tx store.Transactor,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		users:     users,
		locations: locations,
		tx:        tx,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, actor authz.Actor, fields serializer.Fields) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	w, locations, err := serializer.SplitUserInput(fields, serializer.UserCreate)
	if err != nil {
		return nil, err
	}
	if err := authz.Chain(authz.RoleGrant(actor, domain.RoleMember, w.Role)); err != nil {
		log.Warn("rejected role on signup", slog.Int64("actor_id", actor.ID))
		return nil, err
	}

	user := w.NewUser()
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Info("user created", slog.Int64("user_id", user.ID), slog.String("username", user.Username))

	return s.finish(ctx, user.ID, locations)
}

func (s *userService) Update(
	ctx context.Context,
	actor authz.Actor,
	id int64,
	fields serializer.Fields,
	partial bool,
) (*domain.User, error) {
	if err := authz.Chain(authz.Authenticated(actor), authz.UserSelfOrAdmin(actor, id)); err != nil {
		return nil, err
	}

	mode := serializer.UserReplace
	if partial {
		mode = serializer.UserPatch
	}
	w, locations, err := serializer.SplitUserInput(fields, mode)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Chain(authz.RoleGrant(actor, user.Role, w.Role)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("rejected role change",
			slog.Int64("user_id", id),
			slog.Int64("actor_id", actor.ID))
		return nil, err
	}
	w.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("user updated",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.ID))

	return s.finish(ctx, id, locations)
}

// finish reconciles locations for a committed user and reloads it.
func (s *userService) finish(ctx context.Context, userID int64, locations []string) (*domain.User, error) {
	if len(locations) > 0 {
		if err := s.reconcileLocations(ctx, userID, locations); err != nil {
			logger.FromContextOrDefault(ctx, s.logger).Error("location reconciliation failed",
				slog.Int64("user_id", userID),
				slog.String("error", err.Error()))
			return nil, &PartialWriteError{Entity: "user", ID: userID, Step: "attaching locations", Err: err}
		}
	}
	return s.users.GetByID(ctx, userID)
}

// reconcileLocations gets or creates each named location and adds it to the
// user's set in one transaction.
func (s *userService) reconcileLocations(ctx context.Context, userID int64, names []string) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		locations := s.locations
		users := s.users
		if tx != nil {
			locations = locations.WithTx(tx)
			users = users.WithTx(tx)
		}

		ids := make([]int64, 0, len(names))
		for _, name := range names {
			loc, created, err := locations.GetOrCreate(ctx, name)
			if err != nil {
				return err
			}
			if created {
				logger.FromContextOrDefault(ctx, s.logger).Debug("location created for user",
					slog.Int64("user_id", userID),
					slog.String("location", name))
			}
			ids = append(ids, loc.ID)
		}
		return users.AddLocations(ctx, userID, domain.UniqueIDs(ids))
	})
}

func (s *userService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if err := authz.Chain(authz.Authenticated(actor), authz.UserSelfOrAdmin(actor, id)); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", actor.ID))
	return nil
}
