package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType tells whether an account adds to or subtracts from the balance.
type AccountType string

const (
	Income  AccountType = "INCOME"
	Expense AccountType = "EXPENSE"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	return t == Income || t == Expense
}

// ParseAccountType converts user supplied text into an AccountType.
func ParseAccountType(s string) (AccountType, bool) {
	t := AccountType(s)
	return t, t.Valid()
}

// AccountStatus summarises how an account should be flagged in a list.
type AccountStatus string

const (
	StatusPaidIncome  AccountStatus = "PAID_INCOME"
	StatusPaidExpense AccountStatus = "PAID_EXPENSE"
	StatusPending     AccountStatus = "PENDING"
)

// Account is a single bill or income entry.
type Account struct {
	ID          int64           `json:"id"`          // 0 until persisted
	Description string          `json:"description"` // never blank once persisted
	Date        time.Time       `json:"date"`        // calendar date, midnight UTC
	Amount      decimal.Decimal `json:"amount"`      // sign-less, see Type
	Paid        bool            `json:"paid"`
	Type        AccountType     `json:"type"`
	AuditFields
}

// IsNew reports whether the account has not been persisted yet.
func (a Account) IsNew() bool {
	return a.ID == 0
}

// SignedAmount returns the amount with the sign implied by the account type.
func (a Account) SignedAmount() decimal.Decimal {
	if a.Type == Income {
		return a.Amount
	}
	return a.Amount.Neg()
}

// Status returns the list flag for the account.
func (a Account) Status() AccountStatus {
	switch {
	case a.Paid && a.Type == Income:
		return StatusPaidIncome
	case a.Paid && a.Type == Expense:
		return StatusPaidExpense
	default:
		return StatusPending
	}
}
