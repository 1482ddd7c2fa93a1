package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/studyportal/internal/app/auth"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// GuestTokenHeader carries the anonymous watchlist token of a guest.
const GuestTokenHeader = "X-Guest-Token"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	authz      *appauth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authz *appauth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		authz:      authz,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	detail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}

// authenticate validates the bearer token, if any, and stores its claims on the
// context. It reports whether a header was present and any validation error.
func (m *AuthMiddleware) authenticate(c *gin.Context) (bool, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return false, nil
	}
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return true, err
	}
	claims, err := m.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		return true, err
	}
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
	return true, nil
}

func tokenErrorDetails(err error) (dto.ErrorCode, string) {
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.ErrorCodeExpiredToken, "Token has expired"
	case errors.Is(err, apperrors.ErrInvalidFormat):
		return dto.ErrorCodeInvalidToken, "Invalid token format"
	default:
		return dto.ErrorCodeInvalidToken, "Invalid token"
	}
}

// JWTAuth rejects requests without a valid access token
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		present, err := m.authenticate(c)
		if !present {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}
		if err != nil {
			code, details := tokenErrorDetails(err)
			abortUnauthorized(c, code, details)
			return
		}
		c.Next()
	}
}

// OptionalAuth reads the access token when one is sent. Anonymous requests pass
// through; a bad token is still rejected so clients notice an expired session.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := m.authenticate(c); err != nil {
			code, details := tokenErrorDetails(err)
			abortUnauthorized(c, code, details)
			return
		}
		c.Next()
	}
}

// RoleRequired lets only callers of the given role through. It must run after
// JWTAuth. Administrator access is checked against the stored account as well, so a
// demoted admin loses it before their token expires.
func (m *AuthMiddleware) RoleRequired(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User information not found")
			return
		}
		if role, _ := c.Get(ContextRole); role != required {
			forbid(c)
			return
		}
		if required != models.UserRoleAdmin {
			c.Next()
			return
		}
		if err := m.authz.ValidateAdmin(c.Request.Context(), userID); err != nil {
			if errors.Is(err, apperrors.ErrPermissionDenied) || errors.Is(err, apperrors.ErrResourceNotFound) {
				forbid(c)
				return
			}
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func forbid(c *gin.Context) {
	detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
		WithDetails("You don't have sufficient permissions for this operation")
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// Viewer returns the visibility class of the caller.
func Viewer(c *gin.Context) models.ViewerRole {
	role, ok := c.Get(ContextRole)
	if !ok {
		return models.ViewerAnonymous
	}
	userRole, _ := role.(models.UserRole)
	return userRole.ViewerRole()
}

// GuestToken returns the trimmed guest token header.
func GuestToken(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(GuestTokenHeader))
}

// WatchlistOwner picks the signed-in user, falling back to the guest token.
func WatchlistOwner(c *gin.Context) models.Owner {
	if id := UserID(c); id != "" {
		return models.UserOwner(id)
	}
	return models.GuestOwner(GuestToken(c))
}
