package dto

import (
	"time"

	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/SscSPs/bills_app/internal/utils"
)

// CreateAccountRequest defines the data needed to create a new account.
// Date uses the dd/MM/yyyy layout and Amount is a non-negative decimal string.
type CreateAccountRequest struct {
	Description string             `json:"description" binding:"notblank" example:"Rent"`
	Date        string             `json:"date" binding:"required" example:"10/09/2024"`
	Amount      string             `json:"amount" binding:"required" example:"150.00"`
	Paid        bool               `json:"paid"`
	Type        domain.AccountType `json:"type" binding:"required,oneof=INCOME EXPENSE" example:"EXPENSE"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Description *string             `json:"description" binding:"omitempty,notblank"`
	Date        *string             `json:"date"`
	Amount      *string             `json:"amount"`
	Paid        *bool               `json:"paid"`
	Type        *domain.AccountType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID            int64                `json:"id"`
	Description   string               `json:"description"`
	Date          string               `json:"date"`
	Amount        string               `json:"amount"`
	SignedAmount  string               `json:"signedAmount"`
	Paid          bool                 `json:"paid"`
	Type          domain.AccountType   `json:"type"`
	Status        domain.AccountStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            acc.ID,
		Description:   acc.Description,
		Date:          utils.FormatDate(acc.Date),
		Amount:        utils.FormatAmount(acc.Amount),
		SignedAmount:  utils.FormatSignedAmount(*acc),
		Paid:          acc.Paid,
		Type:          acc.Type,
		Status:        acc.Status(),
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListAccountsResponse wraps one page of accounts.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}
