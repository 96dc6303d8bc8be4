// AngelaMos | 2026
// validation.go

package core

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsContactEmail reports whether s looks like an address a customer can be
// reached at. Deliberately looser than RFC 5322.
func IsContactEmail(s string) bool {
	return contactEmailPattern.MatchString(s)
}

// NewValidator returns a validator that reports JSON field names and knows
// the "contact_email" tag.
func NewValidator() *validator.Validate {
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

	//nolint:errcheck // tag name is static and valid
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return IsContactEmail(fl.Field().String())
	})

	return v
}

// FormatValidationError turns one failing field into a client-facing
// message. A missing required field wins over any other failure; otherwise
// the first field in struct declaration order is reported.
func FormatValidationError(err error) string {
	fe, ok := reportedFailure(err)
	if !ok {
		return "invalid request body"
	}
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing required field: %s", field)
	case "oneof":
		return fmt.Sprintf("Invalid %s value", field)
	case "email", "contact_email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte", "lte", "gt", "lt":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("invalid value for %s", field)
	}
}

// IsMissingField reports whether any required field is missing.
func IsMissingField(err error) bool {
	fe, ok := reportedFailure(err)
	return ok && fe.Tag() == "required"
}

func reportedFailure(err error) (validator.FieldError, bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return nil, false
	}
	for _, fe := range errs {
		if fe.Tag() == "required" {
			return fe, true
		}
	}
	return errs[0], true
}
