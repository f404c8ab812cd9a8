package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/core/forms"
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/dto"
	"github.com/SscSPs/bills_app/internal/utils/pagination"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for audit fields
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) formOptions(userID string) []forms.Option {
	return []forms.Option{forms.WithUser(userID), forms.WithClock(s.now)}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	form := forms.New(s.accountRepo, 0, s.formOptions(userID)...)

	err := errors.Join(
		form.EditDescription(req.Description),
		form.EditDate(req.Date),
		form.EditAmount(req.Amount),
		form.SetPaid(req.Paid),
		form.SetType(req.Type),
	)
	if err != nil {
		return nil, err
	}

	account, err := form.Save(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to create account", slog.String("user_id", userID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", account.ID))
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindOne(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, nextToken string) ([]domain.Account, *string, error) {
	if limit <= 0 {
		return nil, nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}

	var cursor *pagination.Cursor
	if nextToken != "" {
		c, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	all, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, nil, err
	}

	page := make([]domain.Account, 0, limit)
	var next *string
	for _, acc := range all {
		if cursor != nil && cursor.Precedes(acc.Date, acc.ID) {
			continue
		}
		if len(page) == limit {
			last := page[len(page)-1]
			token := pagination.EncodeToken(last.Date, last.ID)
			next = &token
			break
		}
		page = append(page, acc)
	}

	return page, next, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}

	form, err := forms.Open(ctx, s.accountRepo, accountID, s.formOptions(userID)...)
	if err != nil {
		return nil, err
	}

	var edits []error
	if req.Description != nil {
		edits = append(edits, form.EditDescription(*req.Description))
	}
	if req.Date != nil {
		edits = append(edits, form.EditDate(*req.Date))
	}
	if req.Amount != nil {
		edits = append(edits, form.EditAmount(*req.Amount))
	}
	if req.Paid != nil {
		edits = append(edits, form.SetPaid(*req.Paid))
	}
	if req.Type != nil {
		edits = append(edits, form.SetType(*req.Type))
	}
	if err := errors.Join(edits...); err != nil {
		return nil, err
	}

	account, err := form.Save(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.Int64("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64, userID string) error {
	if accountID <= 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}

	form, err := forms.Open(ctx, s.accountRepo, accountID, s.formOptions(userID)...)
	if err != nil {
		return err
	}
	if err := form.ShowDeleteDialog(); err != nil {
		return err
	}
	if err := form.Delete(ctx); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID), slog.String("user_id", userID))
	return nil
}
