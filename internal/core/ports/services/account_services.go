package services

import (
	"context"

	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccounts returns one page of accounts in (date, id) order and the token of the next page, if any.
	ListAccounts(ctx context.Context, limit int, nextToken string) ([]domain.Account, *string, error)
}

// AccountWriterSvc defines write operations for account data.
// Every write goes through a form so that REST and interactive edits share validation.
type AccountWriterSvc interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies the provided fields to an existing account.
	UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account.
	DeleteAccount(ctx context.Context, accountID int64, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// OverviewSvc computes the list summary.
type OverviewSvc interface {
	// GetOverview loads every account and computes balance, projection and expected balance.
	GetOverview(ctx context.Context) (*domain.AccountsOverview, error)
}
