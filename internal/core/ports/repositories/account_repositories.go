package repositories

import (
	"context"
	"time"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
)

// AccountReader provides read access to the account directory.
type AccountReader interface {
	// FindAccountByID retrieves an account (with its portfolio) by ID.
	// Returns apperrors.ErrNotFound if no such account exists.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountByEmail retrieves an account by exact, case-sensitive email match.
	// Returns apperrors.ErrNotFound if no such account exists.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// AccountWriter provides write access to the account directory.
type AccountWriter interface {
	// SaveAccount inserts a newly registered account.
	// Returns apperrors.ErrDuplicate if the email is already registered.
	SaveAccount(ctx context.Context, account domain.Account) error
	// MutateAccount loads the account under the store's per-account
	// serialization (lock or row lock), applies fn to it, and persists the
	// resulting snapshot together with any transactions fn returns, as a
	// single atomic step. Concurrent mutations of the same account see each
	// other's writes; a read-compute-write done outside MutateAccount would
	// not. An error from fn aborts the mutation and is returned unwrapped;
	// either everything lands or nothing does.
	MutateAccount(ctx context.Context, accountID string, fn func(account *domain.Account) ([]domain.Transaction, error)) error
}

// TransactionReader pages through an account's append-only trade log.
type TransactionReader interface {
	// ListTransactions returns up to limit transactions strictly before the
	// (before, beforeID) cursor position in (created_at, transaction_id)
	// descending order, newest first. A zero `before` means "from the top of
	// the log"; beforeID breaks ties between transactions sharing a timestamp.
	ListTransactions(ctx context.Context, accountID string, limit int, before time.Time, beforeID string) ([]domain.Transaction, error)
}

// AccountRepositoryFacade is the full contract the services need from the
// account store.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	TransactionReader
}
