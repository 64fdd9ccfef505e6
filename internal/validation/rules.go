// Package validation provides custom validation rules for the application.
package validation

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// MsgRequired is the message used when a mandatory field is missing.
const MsgRequired = "This field is required."

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// personNameRegex accepts letters from any script, hyphens and the spaces between name parts
	personNameRegex = regexp.MustCompile(`^[\p{L}\- ]+$`)
)

// WrapValidationError converts jellydator validation errors into a field-level
// apperrors.ValidationError. Other errors are wrapped as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		out := &apperrors.ValidationError{Fields: make(map[string][]string, len(fieldErrors))}
		for field, fieldErr := range fieldErrors {
			if fieldErr == nil {
				continue
			}
			out.Add(field, fieldErr.Error())
		}
		return out
	}

	var internalErr validation.InternalError
	if errors.As(err, &internalErr) {
		return apperrors.Wrap(err, "validation failed")
	}

	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Required is validation.Required with the API's message.
var Required = validation.Required.Error(MsgRequired)

// MinRunes fails when the value has fewer than n characters. Empty values are left to Required.
func MinRunes(n int, message string) validation.Rule {
	return validation.RuneLength(n, 0).Error(message)
}

// MaxRunes fails when the value has more than n characters.
func MaxRunes(n int, message string) validation.Rule {
	return validation.RuneLength(0, n).Error(message)
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// PersonName validates that a string only holds letters, hyphens and spaces.
var PersonName = validation.NewStringRuleWithError(
	func(s string) bool {
		return personNameRegex.MatchString(s)
	},
	validation.NewError("validation_person_name", "must only contain letters and hyphens"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
