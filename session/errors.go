package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration indicates a per-position duration below the minimum.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrEmptySequence indicates a sequence with no positions.
	ErrEmptySequence = errors.New("empty position sequence")
	// ErrNotConfigured indicates an operation that needs a prior Configure.
	ErrNotConfigured = errors.New("session not configured")
	// ErrNotActive indicates an operation that needs a running or paused session.
	ErrNotActive = errors.New("session not active")
	// ErrLoopStopped indicates a command sent after the session loop exited.
	ErrLoopStopped = errors.New("session loop stopped")
)

// InvalidDurationError is returned when a configured duration is too short.
type InvalidDurationError struct {
	Seconds int
	Minimum int
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("duration must be at least %ds (got %ds)", e.Minimum, e.Seconds)
}

func (e *InvalidDurationError) Unwrap() error {
	return ErrInvalidDuration
}
