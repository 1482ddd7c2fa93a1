package dto

import "github.com/yigit/studyportal/internal/app/models"

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" validate:"required,oneof=admin user"`
}
