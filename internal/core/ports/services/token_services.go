package services

import (
	"context"
	"time"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
)

// TokenSvcFacade issues and validates the access/refresh token pair that
// stands in for the original "current user" session snapshot. The refresh
// token is the session key; the session store only ever holds a pointer to
// the account, never a portfolio copy.
type TokenSvcFacade interface {
	// IssueTokens creates an access JWT plus a rotating refresh token for the
	// account and records the session.
	IssueTokens(ctx context.Context, account *domain.Account) (*TokenPair, error)
	// Refresh validates a raw refresh token, rotates it, and returns a fresh pair.
	Refresh(ctx context.Context, rawRefreshToken string) (*TokenPair, error)
	// RevokeSession removes the session for the given raw refresh token.
	// Revoking an unknown token is not an error.
	RevokeSession(ctx context.Context, rawRefreshToken string) error
}

// TokenPair carries one issued access token and its companion refresh token.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	AccountID        string
}
