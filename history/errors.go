package history

import "errors"

var (
	// ErrRecordNotFound indicates no session matches the requested id.
	ErrRecordNotFound = errors.New("session not found")

	// ErrAmbiguousPrefix indicates a prefix matches multiple sessions.
	ErrAmbiguousPrefix = errors.New("ambiguous session id prefix")
)
