package domain

import (
	"strings"

	validation "github.com/jellydator/validation"

	accountDomain "github.com/allisson/accounts/internal/account/domain"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// SignInInput carries the sign-in form.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims both fields and lower-cases the email.
func (i *SignInInput) Normalize() {
	i.Email = accountDomain.NormalizeEmail(i.Email)
	i.Password = strings.TrimSpace(i.Password)
}

// Validate only checks presence; format problems surface as INVALID_CREDENTIALS.
func (i *SignInInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Email, customValidation.Required),
		validation.Field(&i.Password, customValidation.Required),
	)
	return customValidation.WrapValidationError(err)
}

// Session is a signed-in account with its bearer token key.
type Session struct {
	Account *accountDomain.Account
	Token   string
}
