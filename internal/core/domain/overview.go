package domain

import "github.com/shopspring/decimal"

// AccountsOverview is the list screen summary: the snapshot plus its totals.
type AccountsOverview struct {
	Accounts        []Account       `json:"accounts"`
	Balance         decimal.Decimal `json:"balance"`         // signed sum of every account
	Projection      decimal.Decimal `json:"projection"`      // signed sum of unpaid accounts
	ExpectedBalance decimal.Decimal `json:"expectedBalance"` // Balance + Projection; pending amounts count twice
}
