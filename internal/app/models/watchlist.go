package models

import "time"

// WatchlistEntry relates an account to a saved resource.
type WatchlistEntry struct {
	UserID     string    `json:"userId" db:"user_id"`
	ResourceID string    `json:"resourceId" db:"resource_id"`
	SavedAt    time.Time `json:"savedAt" db:"saved_at"`
}

// Owner identifies whose watchlist is addressed: an account or an anonymous guest.
// Exactly one of the fields is set.
type Owner struct {
	UserID  string
	GuestID string
}

// UserOwner addresses a signed-in user's watchlist.
func UserOwner(userID string) Owner { return Owner{UserID: userID} }

// GuestOwner addresses a guest watchlist keyed by the guest token.
func GuestOwner(guestID string) Owner { return Owner{GuestID: guestID} }

// IsGuest reports whether the owner is an anonymous guest.
func (o Owner) IsGuest() bool { return o.UserID == "" && o.GuestID != "" }

// Valid reports whether exactly one identity is present.
func (o Owner) Valid() bool { return (o.UserID == "") != (o.GuestID == "") }
