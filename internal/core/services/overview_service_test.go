package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewService_GetOverview(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	repo.On("FindAll", ctx).Return([]domain.Account{
		{ID: 1, Date: date(1), Amount: decimal.NewFromInt(100), Type: domain.Income, Paid: true},
		{ID: 2, Date: date(2), Amount: decimal.NewFromInt(40), Type: domain.Expense},
	}, nil).Once()

	overview, err := services.NewOverviewService(repo).GetOverview(ctx)

	require.NoError(t, err)
	assert.Len(t, overview.Accounts, 2)
	assert.True(t, decimal.NewFromInt(60).Equal(overview.Balance))
	assert.True(t, decimal.NewFromInt(-40).Equal(overview.Projection))
	assert.True(t, decimal.NewFromInt(20).Equal(overview.ExpectedBalance))
	repo.AssertExpectations(t)
}

func TestOverviewService_LoadFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	repo.On("FindAll", ctx).Return(nil, assert.AnError).Once()

	overview, err := services.NewOverviewService(repo).GetOverview(ctx)

	assert.Nil(t, overview)
	assert.ErrorIs(t, err, assert.AnError)
}
