package dto

import "time"

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the issued access token. The refresh token travels in
// an http-only cookie, not in the body.
type AuthResponse struct {
	AccountID   string            `json:"accountID"`
	Email       string            `json:"email"`
	AccessToken string            `json:"accessToken"`
	ExpiresAt   time.Time         `json:"expiresAt"`
	Portfolio   PortfolioResponse `json:"portfolio"`
}
