package services

import (
	"context"

	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/core/listing"
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
)

type overviewService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewOverviewService creates the list summary service.
func NewOverviewService(repo portsrepo.AccountReader) portssvc.OverviewSvc {
	return &overviewService{accountRepo: repo}
}

var _ portssvc.OverviewSvc = (*overviewService)(nil)

func (s *overviewService) GetOverview(ctx context.Context) (*domain.AccountsOverview, error) {
	list := listing.New(s.accountRepo)
	if err := list.Load(ctx); err != nil {
		s.LogError(ctx, err, "Failed to load account overview")
		return nil, err
	}

	overview := list.Overview()
	s.LogDebug(ctx, "Account overview computed",
		"accounts", len(overview.Accounts),
		"balance", overview.Balance.String(),
		"projection", overview.Projection.String())
	return &overview, nil
}
