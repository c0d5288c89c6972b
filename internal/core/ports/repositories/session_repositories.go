package repositories

import (
	"context"
	"time"
)

// Session is the currently-active login record. It points at the directory
// entry by account ID rather than duplicating the account snapshot, so there
// is a single authoritative copy of portfolio state.
type Session struct {
	SessionID        string    `json:"sessionID"`        // Opaque key, derived from the refresh token hash
	AccountID        string    `json:"accountID"`        // Pointer into the account directory
	RefreshTokenHash string    `json:"refreshTokenHash"` // SHA-256 of the raw refresh token
	ExpiresAt        time.Time `json:"expiresAt"`
}

// SessionRepository is a key/value session store: put, get, delete.
// Implementations are expected to be synchronous; any failure surfaces as a
// persistence error to the caller.
type SessionRepository interface {
	PutSession(ctx context.Context, session Session) error
	// GetSession returns apperrors.ErrNotFound for unknown or expired sessions.
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// RepositoryProvider bundles the concrete repositories chosen at startup.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	SessionRepo SessionRepository
}
