package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// SlugPattern matches resource identifiers derived from titles.
	SlugPattern = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

	// PhonePattern accepts 10 to 15 digits with an optional leading plus.
	PhonePattern = `^\+?[0-9]{10,15}$`

	// AcademicYearPattern matches "2024-25" style session labels.
	AcademicYearPattern = `^[0-9]{4}(?:-[0-9]{2,4})?$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Slug         *regexp.Regexp
	Phone        *regexp.Regexp
	AcademicYear *regexp.Regexp
}{
	Slug:         regexp.MustCompile(SlugPattern),
	Phone:        regexp.MustCompile(PhonePattern),
	AcademicYear: regexp.MustCompile(AcademicYearPattern),
}

// customRules are registered on the shared validator under their map key.
var customRules = map[string]validator.Func{
	"notblank": func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	},
	"slug": func(fl validator.FieldLevel) bool {
		return CompiledPatterns.Slug.MatchString(fl.Field().String())
	},
	"phone": func(fl validator.FieldLevel) bool {
		return CompiledPatterns.Phone.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	},
	"academicyear": func(fl validator.FieldLevel) bool {
		return CompiledPatterns.AcademicYear.MatchString(fl.Field().String())
	},
}

// message renders a human-readable message for a failed rule.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "required_unless":
		return "is required unless the resource is marked coming soon"
	case "min":
		if isCollection(fe) {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		if isCollection(fe) {
			return "must contain at most " + fe.Param() + " item(s)"
		}
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gtfield":
		return "must be greater than " + lowerFirst(fe.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datauri":
		return "must be a data URI"
	case "slug":
		return "must contain only lower-case letters, digits and hyphens"
	case "phone":
		return "must be a valid phone number"
	case "academicyear":
		return "must look like 2024-25"
	case "uuid", "uuid4":
		return "must be a valid identifier"
	default:
		return "failed validation: " + fe.Tag()
	}
}

func isCollection(fe validator.FieldError) bool {
	switch fe.Kind().String() {
	case "slice", "array", "map":
		return true
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
