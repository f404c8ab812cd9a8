package repositories

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/SscSPs/bills_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRepositoryProvider_Memory(t *testing.T) {
	provider, err := NewRepositoryProvider(context.Background(), &config.Config{StorageBackend: config.BackendMemory}, discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, provider.AccountRepo)
	assert.NoError(t, provider.Close())
}

func TestNewRepositoryProvider_SQLite(t *testing.T) {
	cfg := &config.Config{
		StorageBackend: config.BackendSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "bills.db"),
	}
	provider, err := NewRepositoryProvider(context.Background(), cfg, discardLogger())
	require.NoError(t, err)

	all, err := provider.AccountRepo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoError(t, provider.Close())
}

func TestNewRepositoryProvider_Unknown(t *testing.T) {
	_, err := NewRepositoryProvider(context.Background(), &config.Config{StorageBackend: "redis"}, discardLogger())
	assert.Error(t, err)
}
