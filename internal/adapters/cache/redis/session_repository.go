// Package redis backs the session store with a redis key/value instance.
// Sessions expire via TTL, so the store never needs sweeping.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
)

const sessionKeyPrefix = "boldtrade:session:"

type sessionRepository struct {
	client *redis.Client
}

// NewClient connects to redis and verifies the connection.
func NewClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// NewSessionRepository creates a session store over the given redis client.
func NewSessionRepository(client *redis.Client) portsrepo.SessionRepository {
	return &sessionRepository{client: client}
}

var _ portsrepo.SessionRepository = (*sessionRepository)(nil)

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *sessionRepository) PutSession(ctx context.Context, session portsrepo.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := r.client.Set(ctx, sessionKey(session.SessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (*portsrepo.Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: session", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session portsrepo.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
