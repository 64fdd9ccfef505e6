package domain

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/accounts/internal/errors"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// SignUpInput carries the sign-up form.
type SignUpInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims every field and lower-cases the email.
func (i *SignUpInput) Normalize() {
	i.FullName = strings.TrimSpace(i.FullName)
	i.Email = NormalizeEmail(i.Email)
	i.Password = strings.TrimSpace(i.Password)
}

// Validate checks field formats. Email uniqueness is checked by the use case.
func (i *SignUpInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.FullName, fullNameRules()...),
		validation.Field(&i.Email, emailRules()...),
		validation.Field(&i.Password,
			customValidation.Required,
			customValidation.MinRunes(PasswordMinLength, MsgPasswordTooShort),
			customValidation.MaxRunes(PasswordMaxLength, MsgPasswordTooLong),
		),
	)
	return customValidation.WrapValidationError(err)
}

// SignUpOutput is the created account with its bearer token key.
type SignUpOutput struct {
	Account *Account
	Token   string
}

// UpdateDetailsInput carries the authenticated details form.
type UpdateDetailsInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Normalize trims every field and lower-cases the email.
func (i *UpdateDetailsInput) Normalize() {
	i.FullName = strings.TrimSpace(i.FullName)
	i.Email = NormalizeEmail(i.Email)
}

// Validate applies the sign-up rules for name and email.
func (i *UpdateDetailsInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.FullName, fullNameRules()...),
		validation.Field(&i.Email, emailRules()...),
	)
	return customValidation.WrapValidationError(err)
}

// PasswordResetInput carries the reset request form.
type PasswordResetInput struct {
	Email string `json:"email"`
}

// Normalize trims and lower-cases the email.
func (i *PasswordResetInput) Normalize() {
	i.Email = NormalizeEmail(i.Email)
}

// Validate checks the email is present and well formed.
func (i *PasswordResetInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Email, emailRules()...),
	)
	return customValidation.WrapValidationError(err)
}

// SetPasswordInput carries a new password and its confirmation.
type SetPasswordInput struct {
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// Validate reports PASSWORD_TOO_SHORT on password1 and PASSWORD_MISMATCH as a
// non-field error. Both are reported when both apply.
func (i *SetPasswordInput) Validate() error {
	fields := &apperrors.ValidationError{Fields: map[string][]string{}}
	if len([]rune(i.Password1)) < PasswordMinLength {
		fields.Add("password1", CodePasswordTooShort)
	}
	if i.Password1 != i.Password2 {
		fields.Add(apperrors.NonFieldErrors, CodePasswordMismatch)
	}

	if len(fields.Fields) > 0 {
		return fields
	}
	return nil
}

// ChangePasswordInput carries the authenticated change password form.
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	SetPasswordInput
}

func fullNameRules() []validation.Rule {
	return []validation.Rule{
		customValidation.Required,
		customValidation.MinRunes(FullNameMinLength, MsgFullNameTooShort),
		customValidation.MaxRunes(FullNameMaxLength, MsgFullNameTooLong),
		customValidation.PersonName.Error(MsgFullNameInvalid),
	}
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		customValidation.Required,
		customValidation.Email.Error(MsgEmailInvalid),
	}
}
