package domain

import "fmt"

// State is a lifecycle state of an account.
type State string

const (
	// StateCreated exists only while the sign-up transaction is running.
	StateCreated State = "CREATED"
	// StatePendingActivation waits for the activation link to be used.
	StatePendingActivation State = "PENDING_ACTIVATION"
	// StateActive accounts can sign in.
	StateActive State = "ACTIVE"
	// StatePasswordResetRequested is entered when a reset link is sent and left when
	// the new password is set. It does not change the activation flag.
	StatePasswordResetRequested State = "PASSWORD_RESET_REQUESTED"
)

var transitions = map[State][]State{
	StateCreated:                {StatePendingActivation, StateActive},
	StatePendingActivation:      {StateActive},
	StateActive:                 {StateActive, StatePasswordResetRequested},
	StatePasswordResetRequested: {StateActive, StatePasswordResetRequested},
}

// CanTransition reports whether an account may move from one state to another.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns an error when the move from one state to another is not allowed.
func Transition(from, to State) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid account state transition from %s to %s", from, to)
	}
	return nil
}

// InitialState is the state a new account settles in right after CREATED.
func InitialState(forceActivation bool) State {
	if forceActivation {
		return StatePendingActivation
	}
	return StateActive
}
