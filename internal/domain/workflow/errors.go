package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is not defined for the current state
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState is returned when a state is not valid
	ErrInvalidState = errors.New("invalid state")

	// ErrGuardFailed is returned when a transition exists but its guard rejected the subject.
	// It is always reported together with ErrInvalidTransition.
	ErrGuardFailed = errors.New("guard condition failed")
)
