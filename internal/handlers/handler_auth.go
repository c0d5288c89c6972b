package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
	"github.com/boldtrade/boldtrade_backend/internal/platform/config"
)

// authHandler handles registration, login and the refresh-token session.
type authHandler struct {
	accountService portssvc.AccountSvcFacade
	tokenService   portssvc.TokenSvcFacade
	cfg            *config.Config
}

func newAuthHandler(as portssvc.AccountSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		accountService: as,
		tokenService:   ts,
		cfg:            cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes. The
// credential endpoints are rate limited by client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Account, services.Token, cfg)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(limitermem.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

// setRefreshCookie writes the raw refresh token as an http-only cookie
// scoped to the auth endpoints.
func (h *authHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// Register godoc
// @Summary Register a new trading account
// @Description Creates an account with the demo opening balance and logs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration form"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Registration logs the new account in immediately.
	pair, err := h.tokenService.IssueTokens(c.Request.Context(), account)
	if err != nil {
		logger.Error("Failed to issue tokens after registration", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}
	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)

	c.JSON(http.StatusCreated, dto.AuthResponse{
		AccountID:   account.AccountID,
		Email:       account.Email,
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt,
		Portfolio:   dto.ToPortfolioResponse(&account.Portfolio),
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticates an email/password pair and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pair, err := h.tokenService.IssueTokens(c.Request.Context(), account)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccountID:   account.AccountID,
		Email:       account.Email,
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt,
		Portfolio:   dto.ToPortfolioResponse(&account.Portfolio),
	})
}

// Refresh godoc
// @Summary Rotate the refresh token
// @Description Exchanges the refresh-token cookie for a fresh token pair.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) Refresh(c *gin.Context) {
	rawToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "refresh token missing"})
		return
	}

	pair, err := h.tokenService.Refresh(c.Request.Context(), rawToken)
	if err != nil {
		h.clearRefreshCookie(c)
		respondServiceError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), pair.AccountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccountID:   account.AccountID,
		Email:       account.Email,
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt,
		Portfolio:   dto.ToPortfolioResponse(&account.Portfolio),
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the current session and clears the refresh cookie.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *authHandler) Logout(c *gin.Context) {
	rawToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err == nil && rawToken != "" {
		if revokeErr := h.tokenService.RevokeSession(c.Request.Context(), rawToken); revokeErr != nil {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Warn("Failed to revoke session on logout", slog.String("error", revokeErr.Error()))
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}
