package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
)

const uniqueViolationCode = "23505"

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository over the accounts and
// transactions tables.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &accountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func marshalHoldings(holdings map[string]decimal.Decimal) ([]byte, error) {
	if holdings == nil {
		holdings = map[string]decimal.Decimal{}
	}
	return json.Marshal(holdings)
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	holdingsJSON, err := marshalHoldings(account.Portfolio.Holdings)
	if err != nil {
		return fmt.Errorf("failed to marshal holdings: %w", err)
	}

	query := `
		INSERT INTO accounts (account_id, email, password_hash, balance, holdings, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.pool.Exec(ctx, query,
		account.AccountID,
		account.Email,
		account.PasswordHash,
		account.Portfolio.Balance,
		holdingsJSON,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

func (r *accountRepository) findAccount(ctx context.Context, whereClause string, arg any) (*domain.Account, error) {
	query := `
		SELECT account_id, email, password_hash, balance, holdings, created_at, last_updated_at
		FROM accounts
		WHERE ` + whereClause + `;`

	var acc domain.Account
	var holdingsJSON []byte
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&acc.AccountID,
		&acc.Email,
		&acc.PasswordHash,
		&acc.Portfolio.Balance,
		&holdingsJSON,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if err := json.Unmarshal(holdingsJSON, &acc.Portfolio.Holdings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holdings for account %s: %w", acc.AccountID, err)
	}
	if acc.Portfolio.Holdings == nil {
		acc.Portfolio.Holdings = make(map[string]decimal.Decimal)
	}
	return &acc, nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, "account_id = $1", accountID)
}

func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	// Exact, case-sensitive match.
	return r.findAccount(ctx, "email = $1", email)
}

// MutateAccount locks the account row with FOR UPDATE, hands the loaded
// account to fn, and writes the result plus any returned transactions inside
// the same database transaction. The read happens under the row lock, so
// concurrent mutations of the same account serialize instead of racing
// last-write-wins.
func (r *accountRepository) MutateAccount(ctx context.Context, accountID string, fn func(account *domain.Account) ([]domain.Transaction, error)) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin account mutation: %w", err)
	}
	defer tx.Rollback(ctx)

	var acc domain.Account
	var holdingsJSON []byte
	err = tx.QueryRow(ctx, `
		SELECT account_id, email, password_hash, balance, holdings, created_at, last_updated_at
		FROM accounts
		WHERE account_id = $1
		FOR UPDATE;
	`, accountID).Scan(
		&acc.AccountID,
		&acc.Email,
		&acc.PasswordHash,
		&acc.Portfolio.Balance,
		&holdingsJSON,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	if err := json.Unmarshal(holdingsJSON, &acc.Portfolio.Holdings); err != nil {
		return fmt.Errorf("failed to unmarshal holdings for account %s: %w", accountID, err)
	}
	if acc.Portfolio.Holdings == nil {
		acc.Portfolio.Holdings = make(map[string]decimal.Decimal)
	}

	txns, err := fn(&acc)
	if err != nil {
		return err
	}

	holdingsOut, err := marshalHoldings(acc.Portfolio.Holdings)
	if err != nil {
		return fmt.Errorf("failed to marshal holdings: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounts
		SET balance = $2, holdings = $3, last_updated_at = $4
		WHERE account_id = $1;
	`, accountID, acc.Portfolio.Balance, holdingsOut, acc.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	for _, txn := range txns {
		_, err = tx.Exec(ctx, `
			INSERT INTO transactions (transaction_id, account_id, kind, asset, quantity, unit_price, total, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, txn.TransactionID, txn.AccountID, txn.Kind, txn.Asset, txn.Quantity, txn.UnitPrice, txn.Total, txn.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to append transaction %s: %w", txn.TransactionID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit mutation for account %s: %w", accountID, err)
	}
	return nil
}

func (r *accountRepository) ListTransactions(ctx context.Context, accountID string, limit int, before time.Time, beforeID string) ([]domain.Transaction, error) {
	// The cursor is (created_at, transaction_id): the tie-break keeps a page
	// boundary from skipping transactions that share a timestamp.
	query := `
		SELECT transaction_id, account_id, kind, asset, quantity, unit_price, total, created_at
		FROM transactions
		WHERE account_id = $1
		  AND ($2::timestamptz IS NULL OR created_at < $2 OR (created_at = $2 AND transaction_id < $3))
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $4;
	`
	var beforeArg *time.Time
	var beforeIDArg *string
	if !before.IsZero() {
		beforeArg = &before
	}
	if beforeID != "" {
		beforeIDArg = &beforeID
	}

	rows, err := r.pool.Query(ctx, query, accountID, beforeArg, beforeIDArg, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.AccountID,
			&txn.Kind,
			&txn.Asset,
			&txn.Quantity,
			&txn.UnitPrice,
			&txn.Total,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, txn)
	}
	return out, rows.Err()
}
