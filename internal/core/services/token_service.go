package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/platform/config"
	"github.com/boldtrade/boldtrade_backend/internal/utils"
)

// tokenService issues access/refresh token pairs and keeps the session store
// in sync. The session record stores only a pointer to the account ID; the
// portfolio itself lives solely in the account directory.
type tokenService struct {
	cfg           *config.Config
	sessionRepo   portsrepo.SessionRepository
	accountReader portsrepo.AccountReader
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, sessionRepo portsrepo.SessionRepository, accountReader portsrepo.AccountReader) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:           cfg,
		sessionRepo:   sessionRepo,
		accountReader: accountReader,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueTokens implements portssvc.TokenSvcFacade.
func (s *tokenService) IssueTokens(ctx context.Context, account *domain.Account) (*portssvc.TokenPair, error) {
	accessExpiry := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(account.AccountID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshExpiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	refreshHash := utils.HashRefreshToken(rawRefreshToken)

	session := portsrepo.Session{
		SessionID:        refreshHash,
		AccountID:        account.AccountID,
		RefreshTokenHash: refreshHash,
		ExpiresAt:        refreshExpiry,
	}
	if err := s.sessionRepo.PutSession(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: storing session: %s", apperrors.ErrPersistence, err)
	}

	return &portssvc.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     rawRefreshToken,
		RefreshExpiresAt: refreshExpiry,
		AccountID:        account.AccountID,
	}, nil
}

// Refresh implements portssvc.TokenSvcFacade. The refresh token rotates on
// every use; the old session is removed before the new pair is issued.
func (s *tokenService) Refresh(ctx context.Context, rawRefreshToken string) (*portssvc.TokenPair, error) {
	if rawRefreshToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	sessionID := utils.HashRefreshToken(rawRefreshToken)
	session, err := s.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: reading session: %s", apperrors.ErrPersistence, err)
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessionRepo.DeleteSession(ctx, sessionID)
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CompareRefreshTokenHash(rawRefreshToken, session.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	account, err := s.accountReader.FindAccountByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load account for refresh: %w", err)
	}

	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("%w: rotating session: %s", apperrors.ErrPersistence, err)
	}

	return s.IssueTokens(ctx, account)
}

// RevokeSession implements portssvc.TokenSvcFacade.
func (s *tokenService) RevokeSession(ctx context.Context, rawRefreshToken string) error {
	if rawRefreshToken == "" {
		return nil
	}
	err := s.sessionRepo.DeleteSession(ctx, utils.HashRefreshToken(rawRefreshToken))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: deleting session: %s", apperrors.ErrPersistence, err)
	}
	return nil
}
