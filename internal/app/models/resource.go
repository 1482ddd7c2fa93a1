package models

import "time"

// Visibility controls who may see a resource.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ViewerRole is the caller class used for resource visibility decisions.
type ViewerRole string

const (
	ViewerAnonymous     ViewerRole = "anonymous"
	ViewerAuthenticated ViewerRole = "authenticated"
	ViewerAdmin         ViewerRole = "admin"
)

// Resource is a study-material record (notes, PYQ, syllabus, ...).
type Resource struct {
	ID           string     `json:"id" db:"id" example:"class-11-physics-notes"` // Slug derived from the title
	Title        string     `json:"title" db:"title"`
	Content      string     `json:"content" db:"content"`
	Category     []string   `json:"category" db:"category"`
	Subject      []string   `json:"subject" db:"subject"`
	Stream       []string   `json:"stream" db:"stream"`
	Class        *string    `json:"class,omitempty" db:"class"`
	ImageURL     string     `json:"imageUrl" db:"image_url"`
	PdfURL       *string    `json:"pdfUrl,omitempty" db:"pdf_url"` // Download target
	ViewPdfURL   *string    `json:"viewPdfUrl,omitempty" db:"view_pdf_url"`
	IsComingSoon bool       `json:"isComingSoon" db:"is_coming_soon"`
	Visibility   Visibility `json:"visibility" db:"visibility"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// VisibleTo reports whether a caller of the given role may see the resource.
func (r *Resource) VisibleTo(role ViewerRole) bool {
	switch role {
	case ViewerAdmin:
		return true
	case ViewerAuthenticated:
		return !r.IsComingSoon
	default:
		return !r.IsComingSoon && r.Visibility != VisibilityPrivate
	}
}

// WithoutDownload returns a copy whose download link is removed when the
// resource is not yet released.
func (r Resource) WithoutDownload() Resource {
	if r.IsComingSoon {
		r.PdfURL = nil
	}
	return r
}
