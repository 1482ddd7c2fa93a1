package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
)

type stubUsers map[string]*models.User

func (s stubUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "broken" {
		return nil, errors.New("connection reset")
	}
	u, ok := s[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func TestValidateAdmin(t *testing.T) {
	svc := NewAuthorizationService(stubUsers{
		"a": {ID: "a", Role: models.UserRoleAdmin},
		"u": {ID: "u", Role: models.UserRoleUser},
	})
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		want   error
	}{
		{"admin", "a", nil},
		{"plain user", "u", apperrors.ErrPermissionDenied},
		{"deleted account", "gone", apperrors.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateAdmin(ctx, tt.userID)
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if err := svc.ValidateAdmin(ctx, "broken"); err == nil || errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("store failure: err = %v", err)
	}
}
