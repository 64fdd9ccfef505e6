// Package notification delivers account notices (activation and password reset
// links) through pluggable adapters.
package notification

import (
	"context"
	"fmt"
)

// Kind identifies a notice template.
type Kind string

const (
	KindActivation    Kind = "activation"
	KindPasswordReset Kind = "password_reset"
)

// Notice context keys.
const (
	ContextURL       = "url"
	ContextFirstName = "first_name"
)

// Notice is a message for one or more recipients, rendered from the template of its kind.
type Notice struct {
	Kind       Kind              `json:"kind"`
	Recipients []string          `json:"recipients"`
	Context    map[string]string `json:"context"`
}

// Validate checks the notice can be delivered.
func (n Notice) Validate() error {
	if n.Kind == "" {
		return fmt.Errorf("notice kind is required")
	}
	if len(n.Recipients) == 0 {
		return fmt.Errorf("notice %s has no recipients", n.Kind)
	}
	return nil
}

// Notifier sends notices.
type Notifier interface {
	Send(ctx context.Context, notice Notice) error
}
