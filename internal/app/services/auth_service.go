package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/auth"
	"github.com/yigit/studyportal/internal/pkg/validation"
)

// UserStore is the account persistence the services need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]models.User, int, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.User, error)
}

// AuthService handles registration, login and the guest watchlist hand-over that
// happens when a guest signs in.
type AuthService struct {
	users      UserStore
	watchlist  WatchlistService
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, watchlist WatchlistService, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		watchlist:  watchlist,
		jwtService: jwtService,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user account and signs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := &models.User{
		Email:    req.Email,
		Password: hash,
		Name:     strings.TrimSpace(req.Name),
		Role:     models.UserRoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, apperrors.NewStoreError("failed to create account", err)
	}
	s.logger.Info().Str("userID", user.ID).Msg("User registered")

	return s.signIn(ctx, user, req.GuestToken)
}

// Login checks credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.NewStoreError("failed to load account", err)
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("userID", user.ID).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.signIn(ctx, user, req.GuestToken)
}

// signIn issues the token and, when the caller was a guest, moves the guest
// watchlist into the account. A failed merge does not fail the sign-in.
func (s *AuthService) signIn(ctx context.Context, user *models.User, guestToken string) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn},
		User:  user,
	}
	if guestToken != "" && s.watchlist != nil {
		added, err := s.watchlist.Merge(ctx, user.ID, nil, guestToken)
		if err != nil {
			s.logger.Error().Err(err).Str("userID", user.ID).Msg("Guest watchlist merge failed at sign-in")
		}
		resp.MergedWatchlist = added
	}
	return resp, nil
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		return nil, apperrors.NewStoreError("failed to load account", err)
	}
	return user, nil
}

// EnsureAdmin creates the admin account when no user owns the email yet. An
// existing account with that email is promoted to admin.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != models.UserRoleAdmin {
			if _, err := s.users.UpdateRole(ctx, existing.ID, models.UserRoleAdmin); err != nil {
				return fmt.Errorf("promoting admin: %w", err)
			}
			s.logger.Info().Str("email", email).Msg("Existing account promoted to admin")
		}
		return nil
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return fmt.Errorf("looking up admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	admin := &models.User{Email: email, Password: hash, Name: "Administrator", Role: models.UserRoleAdmin}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("Default admin created")
	return nil
}
