package models

import "time"

// Teacher is a faculty profile shown on the portal.
type Teacher struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Subject       string    `json:"subject" db:"subject"`
	Qualification string    `json:"qualification" db:"qualification"`
	Experience    string    `json:"experience" db:"experience"`
	ImageURL      string    `json:"imageUrl" db:"image_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
