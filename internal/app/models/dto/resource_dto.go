package dto

import (
	"strings"

	"github.com/yigit/studyportal/internal/app/models"
)

// ResourceRequest is the admin create/update payload.
type ResourceRequest struct {
	Title        string            `json:"title" validate:"required,notblank,min=3,max=200"`
	Content      string            `json:"content" validate:"required,min=10"`
	Category     []string          `json:"category" validate:"required,min=1,dive,notblank"`
	Subject      []string          `json:"subject" validate:"required,min=1,dive,notblank"`
	Stream       []string          `json:"stream" validate:"required,min=1,dive,notblank"`
	Class        string            `json:"class,omitempty" validate:"omitempty,max=60"`
	ImageURL     string            `json:"imageUrl" validate:"required,url"`
	PdfURL       string            `json:"pdfUrl,omitempty" validate:"required_unless=IsComingSoon true,omitempty,url"`
	ViewPdfURL   string            `json:"viewPdfUrl,omitempty" validate:"omitempty,url"`
	IsComingSoon bool              `json:"isComingSoon"`
	Visibility   models.Visibility `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}

// ToModel converts the request into a Resource without id or timestamps.
func (r *ResourceRequest) ToModel() *models.Resource {
	res := &models.Resource{
		Title:        strings.TrimSpace(r.Title),
		Content:      r.Content,
		Category:     trimAll(r.Category),
		Subject:      trimAll(r.Subject),
		Stream:       trimAll(r.Stream),
		ImageURL:     r.ImageURL,
		IsComingSoon: r.IsComingSoon,
		Visibility:   r.Visibility,
	}
	if res.Visibility == "" {
		res.Visibility = models.VisibilityPublic
	}
	if c := strings.TrimSpace(r.Class); c != "" {
		res.Class = &c
	}
	if r.PdfURL != "" {
		res.PdfURL = &r.PdfURL
	}
	if r.ViewPdfURL != "" {
		res.ViewPdfURL = &r.ViewPdfURL
	}
	return res
}

// ResourceListResponse is one page of the catalog.
type ResourceListResponse struct {
	Items      []ResourceItem `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// ResourceItem is a resource as listed to a caller, marked when saved.
type ResourceItem struct {
	models.Resource
	Saved bool `json:"saved"`
}

// FacetsResponse lists the distinct filter values of the visible catalog.
type FacetsResponse struct {
	Categories []string `json:"categories"`
	Subjects   []string `json:"subjects"`
	Streams    []string `json:"streams"`
}

// UploadResponse is the URL of an uploaded file.
type UploadResponse struct {
	URL string `json:"url"`
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
