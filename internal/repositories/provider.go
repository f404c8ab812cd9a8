// Package repositories selects and wires the storage backend.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	"github.com/SscSPs/bills_app/internal/platform/config"
	"github.com/SscSPs/bills_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bills_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/bills_app/internal/repositories/memory"
	"github.com/SscSPs/bills_app/pkg/database"
)

// NewRepositoryProvider opens the backend named by cfg.StorageBackend,
// running its migrations first. Callers must Close the provider.
func NewRepositoryProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	logger = logger.With(slog.String("storage_backend", string(cfg.StorageBackend)))

	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(), nil

	case config.BackendPostgres:
		logger.Info("Running database migrations...")
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("postgres migrations: %w", err)
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		return pgsql.NewRepositoryProvider(pool), nil

	case config.BackendSQLite:
		provider, err := sqlite.NewRepositoryProvider(cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("sqlite storage: %w", err)
		}
		logger.Info("SQLite storage ready", slog.String("path", cfg.SQLitePath))
		return provider, nil

	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
