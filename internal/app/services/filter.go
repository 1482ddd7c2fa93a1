package services

import (
	"sort"
	"strings"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
)

// ResourceFilter narrows a resource list. Every criterion left empty matches
// everything and the set criteria are combined with AND.
type ResourceFilter struct {
	// Categories matches resources having at least one of the listed categories.
	Categories []string
	// Subjects matches resources having at least one of the listed subjects.
	Subjects []string
	// Stream matches resources with a stream value containing it, ignoring case.
	Stream string
	// Query matches resources whose title contains it, ignoring case.
	Query string
}

// IsZero reports whether the filter lets everything through.
func (f ResourceFilter) IsZero() bool {
	return len(f.Categories) == 0 && len(f.Subjects) == 0 &&
		strings.TrimSpace(f.Stream) == "" && strings.TrimSpace(f.Query) == ""
}

// Matches reports whether a resource passes every set criterion.
func (f ResourceFilter) Matches(r *models.Resource) bool {
	if len(f.Categories) > 0 && !overlaps(r.Category, f.Categories) {
		return false
	}
	if len(f.Subjects) > 0 && !overlaps(r.Subject, f.Subjects) {
		return false
	}
	if stream := strings.TrimSpace(f.Stream); stream != "" && !anyContains(r.Stream, stream) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" && !containsFold(r.Title, q) {
		return false
	}
	return true
}

// Apply returns the matching resources in their original order.
func (f ResourceFilter) Apply(resources []models.Resource) []models.Resource {
	if f.IsZero() {
		return resources
	}
	out := make([]models.Resource, 0, len(resources))
	for i := range resources {
		if f.Matches(&resources[i]) {
			out = append(out, resources[i])
		}
	}
	return out
}

// Facets collects the distinct category, subject and stream values of resources,
// each sorted.
func Facets(resources []models.Resource) dto.FacetsResponse {
	categories := map[string]struct{}{}
	subjects := map[string]struct{}{}
	streams := map[string]struct{}{}
	for _, r := range resources {
		addAll(categories, r.Category)
		addAll(subjects, r.Subject)
		addAll(streams, r.Stream)
	}
	return dto.FacetsResponse{
		Categories: sortedKeys(categories),
		Subjects:   sortedKeys(subjects),
		Streams:    sortedKeys(streams),
	}
}

func overlaps(values, selected []string) bool {
	for _, v := range values {
		for _, s := range selected {
			if strings.EqualFold(v, s) {
				return true
			}
		}
	}
	return false
}

func anyContains(values []string, sub string) bool {
	for _, v := range values {
		if containsFold(v, sub) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func addAll(set map[string]struct{}, values []string) {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
