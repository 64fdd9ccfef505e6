// Package service provides the bearer token key generator used by the session gateway.
package service

// KeyService generates bearer token keys.
type KeyService interface {
	// GenerateKey returns a new random key as 40 lower-case hex characters.
	GenerateKey() (string, error)
}
