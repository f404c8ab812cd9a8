package accounting

import (
	"github.com/SscSPs/bills_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balance is the signed sum of every account: INCOME adds, EXPENSE subtracts.
// The paid flag is ignored.
func Balance(accounts []domain.Account) decimal.Decimal {
	sum := decimal.Zero
	for _, acc := range accounts {
		sum = sum.Add(acc.SignedAmount())
	}
	return sum
}

// Projection is the signed sum restricted to accounts that are not paid yet,
// i.e. the effect the pending items will have once they settle.
func Projection(accounts []domain.Account) decimal.Decimal {
	sum := decimal.Zero
	for _, acc := range accounts {
		if acc.Paid {
			continue
		}
		sum = sum.Add(acc.SignedAmount())
	}
	return sum
}

// ExpectedBalance is Balance plus Projection. Balance already includes unpaid
// accounts, so each pending amount is counted twice: once as recorded and once
// as its upcoming settlement. A single unpaid 40 EXPENSE yields -80.
func ExpectedBalance(accounts []domain.Account) decimal.Decimal {
	return Balance(accounts).Add(Projection(accounts))
}

// Overview bundles a snapshot with its computed totals. ExpectedBalance is
// computed as in ExpectedBalance.
func Overview(accounts []domain.Account) domain.AccountsOverview {
	if accounts == nil {
		accounts = []domain.Account{}
	}
	balance := Balance(accounts)
	projection := Projection(accounts)
	return domain.AccountsOverview{
		Accounts:        accounts,
		Balance:         balance,
		Projection:      projection,
		ExpectedBalance: balance.Add(projection),
	}
}
