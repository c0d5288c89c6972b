package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]portsrepo.Session
}

// NewSessionRepository creates an empty in-memory session store.
func NewSessionRepository() portsrepo.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]portsrepo.Session),
	}
}

var _ portsrepo.SessionRepository = (*sessionRepository)(nil)

func (r *sessionRepository) PutSession(ctx context.Context, session portsrepo.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.SessionID] = session
	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (*portsrepo.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: session", apperrors.ErrNotFound)
	}
	if time.Now().After(session.ExpiresAt) {
		// Lazy expiry; redis handles this with TTLs.
		r.mu.Lock()
		delete(r.sessions, sessionID)
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: session expired", apperrors.ErrNotFound)
	}
	return &session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}
