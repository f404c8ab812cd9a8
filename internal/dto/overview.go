package dto

import (
	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/utils"
)

// OverviewResponse is the account list together with its totals.
type OverviewResponse struct {
	Accounts        []AccountResponse `json:"accounts"`
	Balance         string            `json:"balance" example:"60.00"`
	Projection      string            `json:"projection" example:"-40.00"`
	ExpectedBalance string            `json:"expectedBalance" example:"20.00"`
}

// ToOverviewResponse converts a domain.AccountsOverview to its DTO.
func ToOverviewResponse(o *domain.AccountsOverview) OverviewResponse {
	return OverviewResponse{
		Accounts:        ToListAccountResponse(o.Accounts),
		Balance:         utils.FormatAmount(o.Balance),
		Projection:      utils.FormatAmount(o.Projection),
		ExpectedBalance: utils.FormatAmount(o.ExpectedBalance),
	}
}
