package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields mirrors the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Account is one row of the accounts table.
type Account struct {
	ID          int64           `db:"id"`
	Description string          `db:"description"`
	AccountDate time.Time       `db:"account_date"`
	Amount      decimal.Decimal `db:"amount"`
	Paid        bool            `db:"paid"`
	AccountType string          `db:"account_type"`
	AuditFields
}
