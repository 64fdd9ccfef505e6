// Package dto provides data transfer objects for the account HTTP API.
package dto

import (
	"github.com/allisson/accounts/internal/account/domain"
)

// SignUpRequest is the body of POST /v1/sign-up.
type SignUpRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field
}

// ToDomain converts the request to the sign-up input.
func (r *SignUpRequest) ToDomain() *domain.SignUpInput {
	return &domain.SignUpInput{FullName: r.FullName, Email: r.Email, Password: r.Password}
}

// ResetPasswordRequest is the body of POST /v1/reset-password.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// SetPasswordRequest is the body of POST /v1/set-password/:uuid/:token.
// It is accepted as JSON or as a form post.
type SetPasswordRequest struct {
	Password1 string `json:"password1" form:"password1"`
	Password2 string `json:"password2" form:"password2"`
}

// ToDomain converts the request to the set-password input.
func (r *SetPasswordRequest) ToDomain() *domain.SetPasswordInput {
	return &domain.SetPasswordInput{Password1: r.Password1, Password2: r.Password2}
}

// ChangePasswordRequest is the body of POST /v1/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	Password1   string `json:"password1"`
	Password2   string `json:"password2"`
}

// ToDomain converts the request to the change-password input.
func (r *ChangePasswordRequest) ToDomain() *domain.ChangePasswordInput {
	return &domain.ChangePasswordInput{
		OldPassword:      r.OldPassword,
		SetPasswordInput: domain.SetPasswordInput{Password1: r.Password1, Password2: r.Password2},
	}
}

// UpdateDetailsRequest is the body of POST /v1/update-details.
type UpdateDetailsRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ToDomain converts the request to the update-details input.
func (r *UpdateDetailsRequest) ToDomain() *domain.UpdateDetailsInput {
	return &domain.UpdateDetailsInput{FullName: r.FullName, Email: r.Email}
}
