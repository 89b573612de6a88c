// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/fastkv/fastkv-go/internal/errors"
)

var (
	// accountIDRegex matches NEAR-style account ids: lowercase alphanumeric
	// segments separated by single dots, hyphens or underscores allowed
	// inside segments.
	accountIDRegex = regexp.MustCompile(`^([a-z0-9]+[a-z0-9_-]*)(\.[a-z0-9]+[a-z0-9_-]*)*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// AccountID validates an account identifier.
var AccountID = validation.NewStringRuleWithError(
	func(s string) bool {
		return len(s) >= 2 && len(s) <= 64 && accountIDRegex.MatchString(s)
	},
	validation.NewError("validation_account_id", "must be a valid account id"),
)

// UserKey validates a user-supplied storage key fragment. Keys may use "/"
// for logical grouping but must not be empty, start or end with "/", or
// contain empty segments, so the fully qualified path stays unambiguous.
var UserKey = validation.NewStringRuleWithError(
	func(s string) bool {
		if s == "" || len(s) > 256 {
			return false
		}
		for _, segment := range strings.Split(s, "/") {
			if segment == "" {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_user_key", "must be a non-empty key without empty path segments"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
