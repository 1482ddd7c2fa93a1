package dto

import "github.com/yigit/studyportal/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// GuestToken, when present, merges the guest watchlist into the account.
	GuestToken string `json:"guestToken,omitempty" validate:"omitempty,max=128"`
}

// RegisterRequest represents a new account
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Name       string `json:"name" validate:"required,notblank,min=2,max=80"`
	GuestToken string `json:"guestToken,omitempty" validate:"omitempty,max=128"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *models.User  `json:"user"`
	// MergedWatchlist is the number of guest entries added to the account.
	MergedWatchlist int `json:"mergedWatchlist,omitempty"`
}
