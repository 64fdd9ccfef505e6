// Package dto provides data transfer objects for the session endpoints.
package dto

import (
	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// SignInRequest is the body of POST /v1/sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field
}

// ToDomain converts the request to the sign-in input.
func (r *SignInRequest) ToDomain() *authDomain.SignInInput {
	return &authDomain.SignInInput{Email: r.Email, Password: r.Password}
}

// AuthenticateRequest is the body of POST /v1/authenticate.
type AuthenticateRequest struct {
	Token string `json:"token"`
}
