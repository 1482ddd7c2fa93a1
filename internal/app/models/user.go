package models

import (
	"time"
)

// UserRole is the stored role of an account.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// Valid reports whether the role is known.
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

// ViewerRole maps the account role onto the resource visibility classes.
func (r UserRole) ViewerRole() ViewerRole {
	if r == UserRoleAdmin {
		return ViewerAdmin
	}
	return ViewerAuthenticated
}

// User defines the user model based on the 'users' table
type User struct {
	ID        string    `json:"id" db:"id" example:"5f0c9c1e-3d0b-4c55-9a43-0f1b6f0d2a11"`
	Email     string    `json:"email" db:"email" example:"student@example.com"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	Name      string    `json:"name" db:"name" example:"Asha Patil"`
	Role      UserRole  `json:"role" db:"role" example:"user"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
