// Package validation checks request and flow inputs against their declared shape and
// reports failures as a field-indexed map instead of an opaque error.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Engine returns the shared validator, configured once.
func Engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		for tag, fn := range customRules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic("validation: register " + tag + ": " + err.Error())
			}
		}
		instance = v
	})
	return instance
}

// Validate checks input (a struct or pointer to struct) and returns nil or an
// *apperrors.ValidationError holding one message per offending field path. The first
// failing rule of a field wins.
func Validate(input any) error {
	err := Engine().Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: the caller passed something that is not a struct.
		return apperrors.NewValidationError(map[string]string{"": err.Error()})
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		if _, seen := fields[path]; seen {
			continue
		}
		fields[path] = message(fe)
	}
	return apperrors.NewValidationError(fields)
}

// Fields returns the field map carried by a validation error, or nil.
func Fields(err error) map[string]string {
	if vErr, ok := apperrors.AsValidationError(err); ok {
		return vErr.Fields
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace
// ("TestPaperInput.questions[2].options" -> "questions[2].options").
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
