package auth

import (
	"context"
	"errors"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

// ErrNotAdmin is returned when an action needs an administrator.
var ErrNotAdmin = apperrors.NewForbiddenError("only administrators can perform this action")

// UserLookup loads accounts by id
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthorizationService answers role questions against the stored account, so a
// demoted admin loses access before their token expires.
type AuthorizationService struct {
	users UserLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users UserLookup) *AuthorizationService {
	return &AuthorizationService{users: users}
}

// CurrentRole returns the stored role of userID.
func (s *AuthorizationService) CurrentRole(ctx context.Context, userID string) (models.UserRole, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID", userID).Msg("Error getting user by ID in CurrentRole")
		return "", err
	}
	return user.Role, nil
}

// IsAdmin checks if the user is an administrator
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := s.CurrentRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == models.UserRoleAdmin, nil
}

// ValidateAdmin returns ErrNotAdmin unless the user is an administrator
func (s *AuthorizationService) ValidateAdmin(ctx context.Context, userID string) error {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}
	return nil
}
