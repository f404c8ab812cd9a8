package repositories

import (
	"context"

	"github.com/SscSPs/bills_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindOne retrieves an account by its identifier. It returns apperrors.ErrNotFound on a miss.
	FindOne(ctx context.Context, id int64) (*domain.Account, error)

	// FindAll retrieves every account ordered by date, then id.
	FindAll(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// Save inserts the account when its ID is 0 (assigning one) and upserts it otherwise.
	Save(ctx context.Context, account domain.Account) (*domain.Account, error)

	// Remove deletes the account. It returns apperrors.ErrNotFound if it does not exist.
	Remove(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
