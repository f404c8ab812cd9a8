// Package memory keeps accounts in process memory. Everything is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
)

// AccountRepository is a map backed AccountRepositoryFacade.
type AccountRepository struct {
	mu     sync.RWMutex
	items  map[int64]domain.Account
	nextID int64
}

// NewAccountRepository returns an empty repository, optionally seeded.
// Seed accounts with ID 0 get an id assigned.
func NewAccountRepository(seed ...domain.Account) *AccountRepository {
	r := &AccountRepository{items: map[int64]domain.Account{}}
	for _, acc := range seed {
		_, _ = r.Save(context.Background(), acc)
	}
	return r
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// NewRepositoryProvider wires a fresh in-memory store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{AccountRepo: NewAccountRepository()}
}

func (r *AccountRepository) FindOne(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	return &acc, nil
}

func (r *AccountRepository) FindAll(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	out := make([]domain.Account, 0, len(r.items))
	for _, acc := range r.items {
		out = append(out, acc)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *AccountRepository) Save(_ context.Context, account domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == 0 {
		r.nextID++
		account.ID = r.nextID
	} else if account.ID > r.nextID {
		r.nextID = account.ID
	}
	r.items[account.ID] = account
	return &account, nil
}

func (r *AccountRepository) Remove(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[account.ID]; !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, account.ID)
	}
	delete(r.items, account.ID)
	return nil
}
