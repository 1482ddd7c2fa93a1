package services

import (
	"context"
	"errors"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/helpers"
	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/pkg/validation"
)

// UserService defines the admin operations on accounts
type UserService interface {
	List(ctx context.Context, page, size int) (*dto.PaginatedResponse[models.User], error)
	UpdateRole(ctx context.Context, actorID, userID string, req *dto.UpdateRoleRequest) (*models.User, error)
}

type userServiceImpl struct {
	users UserStore
}

// NewUserService creates a new user service instance
func NewUserService(users UserStore) UserService {
	return &userServiceImpl{users: users}
}

func (s *userServiceImpl) List(ctx context.Context, page, size int) (*dto.PaginatedResponse[models.User], error) {
	if page < 1 {
		page = helpers.DefaultPage
	}
	if size <= 0 {
		size = helpers.DefaultPageSize
	}
	users, total, err := s.users.List(ctx, helpers.PageOffset(page, size), size)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list users", err)
	}
	return &dto.PaginatedResponse[models.User]{
		Items:      users,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// UpdateRole changes another user's role. Admins cannot change their own role, so
// the portal always keeps at least the acting admin.
func (s *userServiceImpl) UpdateRole(ctx context.Context, actorID, userID string, req *dto.UpdateRoleRequest) (*models.User, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	if actorID == userID {
		return nil, apperrors.NewForbiddenError("you cannot change your own role")
	}

	user, err := s.users.UpdateRole(ctx, userID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		return nil, apperrors.NewStoreError("failed to update role", err)
	}
	logger.Info().Str("userID", userID).Str("role", string(req.Role)).Str("by", actorID).Msg("User role changed")
	return user, nil
}
