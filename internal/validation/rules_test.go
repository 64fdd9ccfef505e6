package validation

import (
	"errors"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/accounts/internal/errors"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		shouldErr bool
	}{
		{"valid email", "user@example.com", false},
		{"valid email with subdomain", "user@mail.example.com", false},
		{"valid email with plus", "user+tag@example.com", false},
		{"missing at", "test.test.com", true},
		{"missing domain", "user@", true},
		{"missing tld", "user@example", true},
		{"empty is left to Required", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.email, Email)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPersonName(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"single name", "Ethan", false},
		{"multiple parts", "Ethan Sky Blue", false},
		{"hyphenated", "Anne-Marie", false},
		{"accented", "Zoë Renée", false},
		{"digits", "ab $ 13", true},
		{"punctuation", "John!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, PersonName)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRuneLengthRules(t *testing.T) {
	assert.EqualError(t, validation.Validate("ab", MinRunes(3, "too short")), "too short")
	assert.NoError(t, validation.Validate("abc", MinRunes(3, "too short")))
	assert.NoError(t, validation.Validate("", MinRunes(3, "too short")))

	assert.EqualError(t, validation.Validate("abcdef", MaxRunes(5, "too long")), "too long")
	assert.NoError(t, validation.Validate("ééééé", MaxRunes(5, "too long")))
}

func TestRequired(t *testing.T) {
	assert.EqualError(t, validation.Validate("", Required), MsgRequired)
	assert.NoError(t, validation.Validate("x", Required))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, validation.Validate("hello", NoWhitespace))
	assert.Error(t, validation.Validate(" hello", NoWhitespace))
	assert.Error(t, validation.Validate("hello ", NoWhitespace))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("hello", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
}

type signUpInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func TestWrapValidationError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("field errors", func(t *testing.T) {
		in := signUpInput{FullName: "ab", Email: "nope"}
		err := validation.ValidateStruct(&in,
			validation.Field(&in.FullName, Required, MinRunes(3, "too short")),
			validation.Field(&in.Email, Required, Email.Error("bad email")),
		)
		require.Error(t, err)

		wrapped := WrapValidationError(err)

		var validationErr *apperrors.ValidationError
		require.True(t, errors.As(wrapped, &validationErr))
		assert.Equal(t, []string{"too short"}, validationErr.Fields["full_name"])
		assert.Equal(t, []string{"bad email"}, validationErr.Fields["email"])
		assert.True(t, apperrors.Is(wrapped, apperrors.ErrInvalidInput))
	})

	t.Run("plain error", func(t *testing.T) {
		wrapped := WrapValidationError(errors.New("boom"))
		assert.True(t, apperrors.Is(wrapped, apperrors.ErrInvalidInput))
	})
}
