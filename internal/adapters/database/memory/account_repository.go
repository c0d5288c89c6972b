// Package memory provides mutex-guarded in-process stores. They are the
// default when no PGSQL_URL / REDIS_ADDR is configured and back the service
// tests; all writes are deep-copied so callers never share state with the
// store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
)

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account       // keyed by account ID
	byEmail  map[string]string               // email -> account ID, exact match
	txns     map[string][]domain.Transaction // newest-first per account
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() portsrepo.AccountRepositoryFacade {
	return &accountRepository{
		accounts: make(map[string]domain.Account),
		byEmail:  make(map[string]string),
		txns:     make(map[string][]domain.Transaction),
	}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func copyAccount(a domain.Account) domain.Account {
	out := a
	out.Portfolio = a.Portfolio.Clone()
	return out
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, account.Email)
	}
	if _, exists := r.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}

	r.accounts[account.AccountID] = copyAccount(account)
	r.byEmail[account.Email] = account.AccountID
	return nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	out := copyAccount(account)
	return &out, nil
}

func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accountID, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("%w: no account for email", apperrors.ErrNotFound)
	}
	out := copyAccount(r.accounts[accountID])
	return &out, nil
}

// MutateAccount runs the whole load-compute-store cycle in one critical
// section. Concurrent mutations of the same account each see the previous
// one's result; nothing races last-write-wins.
func (r *accountRepository) MutateAccount(ctx context.Context, accountID string, fn func(account *domain.Account) ([]domain.Transaction, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	account := copyAccount(stored)
	txns, err := fn(&account)
	if err != nil {
		return err
	}

	r.accounts[accountID] = copyAccount(account)
	for _, txn := range txns {
		r.txns[accountID] = append([]domain.Transaction{txn}, r.txns[accountID]...)
	}
	return nil
}

func (r *accountRepository) ListTransactions(ctx context.Context, accountID string, limit int, before time.Time, beforeID string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.accounts[accountID]; !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	// Order by (created_at, transaction_id) descending so the cursor has a
	// total order to page over even when timestamps collide.
	sorted := make([]domain.Transaction, len(r.txns[accountID]))
	copy(sorted, r.txns[accountID])
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].TransactionID > sorted[j].TransactionID
	})

	out := make([]domain.Transaction, 0, limit)
	for _, txn := range sorted {
		if !before.IsZero() {
			afterCursor := txn.CreatedAt.After(before) ||
				(txn.CreatedAt.Equal(before) && txn.TransactionID >= beforeID)
			if afterCursor {
				continue
			}
		}
		out = append(out, txn)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
