package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/adboard/adboard-api/internal/config"
	"github.com/adboard/adboard-api/internal/platform/metrics"
	"github.com/adboard/adboard-api/internal/platform/postgres"
	"github.com/adboard/adboard-api/internal/platform/storage"
	"github.com/adboard/adboard-api/internal/service"
	"github.com/adboard/adboard-api/internal/service/auth"
	"github.com/adboard/adboard-api/internal/store"
)

// application holds the shared dependencies of the server so that they can
// be wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore      store.UserStore
	locationStore  store.LocationStore
	categoryStore  store.CategoryStore
	adStore        store.AdStore
	selectionStore store.SelectionStore
	transactor     store.Transactor

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	adService        service.AdService
	userService      service.UserService
	selectionService service.SelectionService

	images  *storage.LocalStore
	metrics *metrics.Metrics
}

// newApplication wires stores, services and platform components around an
// open database handle.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.images, err = storage.NewLocalStore(cfg.Storage.MediaDir, cfg.Storage.MediaURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media storage: %w", err)
	}

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	app.locationStore = postgres.NewPostgresLocationStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.adStore = postgres.NewPostgresAdStore(db, logger)
	app.selectionStore = postgres.NewPostgresSelectionStore(db, logger)
	app.transactor = store.NewDBTransactor(db)

	app.adService = service.NewAdService(app.adStore, app.userStore, app.categoryStore, app.images, logger)
	app.userService = service.NewUserService(app.userStore, app.locationStore, app.transactor, logger)
	app.selectionService = service.NewSelectionService(
		app.selectionStore,
		app.adStore,
		app.userStore,
		app.transactor,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled and then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("Application shutdown completed")
}
