package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adboard/adboard-api/internal/config"
	"github.com/adboard/adboard-api/internal/platform/postgres/migrations"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// migrationCommands lists the goose commands accepted by -migrate.
var migrationCommands = []string{"up", "down", "status", "version", "reset"}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func validMigrationCommand(command string) bool {
	for _, c := range migrationCommands {
		if c == command {
			return true
		}
	}
	return false
}

// runMigrations executes a goose command against the configured database
// using the embedded migration files.
func runMigrations(cfg *config.Config, command string, logger *slog.Logger) error {
	if !validMigrationCommand(command) {
		return fmt.Errorf("unknown migration command %q (expected one of %v)", command, migrationCommands)
	}

	migrationLogger := logger.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("command", command),
	)

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			migrationLogger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrations.TableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrationLogger.Info("Starting migration command execution")
	if err := goose.RunContext(context.Background(), command, db, "."); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	migrationLogger.Info("Migration command completed")
	return nil
}
