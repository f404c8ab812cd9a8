// Package listing loads the account snapshot behind the overview and keeps
// track of whether the last load succeeded.
package listing

import (
	"context"
	"fmt"

	"github.com/SscSPs/bills_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	"github.com/SscSPs/bills_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// PhaseName is the state of a List.
type PhaseName string

const (
	PhaseLoading PhaseName = "loading"
	PhaseFailed  PhaseName = "failed"
	PhaseReady   PhaseName = "ready"
)

// List holds the last loaded snapshot of accounts. It is not safe for
// concurrent use.
type List struct {
	repo     portsrepo.AccountReader
	phase    PhaseName
	err      error
	accounts []domain.Account
}

// New returns a list in the Loading phase. Call Load to fetch the snapshot.
func New(repo portsrepo.AccountReader) *List {
	return &List{repo: repo, phase: PhaseLoading}
}

// Load fetches every account. A failure keeps the previous snapshot out of
// reach and moves the list to Failed; calling Load again retries.
func (l *List) Load(ctx context.Context) error {
	l.phase = PhaseLoading
	l.err = nil

	accounts, err := l.repo.FindAll(ctx)
	if err != nil {
		l.phase = PhaseFailed
		l.err = err
		l.accounts = nil
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}

	l.accounts = accounts
	l.phase = PhaseReady
	return nil
}

// Phase returns the current phase.
func (l *List) Phase() PhaseName {
	return l.phase
}

// Err returns the error of the last failed load.
func (l *List) Err() error {
	return l.err
}

// Accounts returns the snapshot. It is empty unless the list is Ready.
func (l *List) Accounts() []domain.Account {
	if l.phase != PhaseReady {
		return []domain.Account{}
	}
	return l.accounts
}

// Balance is accounting.Balance over the snapshot.
func (l *List) Balance() decimal.Decimal {
	return accounting.Balance(l.Accounts())
}

// Projection is accounting.Projection over the snapshot.
func (l *List) Projection() decimal.Decimal {
	return accounting.Projection(l.Accounts())
}

// Overview returns the snapshot together with its totals.
func (l *List) Overview() domain.AccountsOverview {
	return accounting.Overview(l.Accounts())
}
