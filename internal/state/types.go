// Package state manages the reiki-timer state file.
//
// The state file (~/.local/state/reiki-timer/state.json) stores the history
// of sessions that have ended. All writes are serialized through file
// locking so two timers running at once cannot lose each other's records.
package state

import "time"

// State represents the persisted state file.
type State struct {
	Sessions map[string]Session `json:"sessions"`
}

// SessionOutcome describes how a session ended.
type SessionOutcome string

const (
	// SessionCompleted indicates every position was held.
	SessionCompleted SessionOutcome = "completed"
	// SessionAborted indicates the session was stopped early.
	SessionAborted SessionOutcome = "aborted"
)

// ValidSessionOutcomes returns all valid session outcome values.
func ValidSessionOutcomes() []SessionOutcome {
	return []SessionOutcome{SessionCompleted, SessionAborted}
}

// IsValid returns true if the outcome is a known value.
func (o SessionOutcome) IsValid() bool {
	for _, valid := range ValidSessionOutcomes() {
		if o == valid {
			return true
		}
	}
	return false
}

// Session records one session that has ended.
type Session struct {
	ID              string         `json:"id"`
	Sequence        string         `json:"sequence"`
	PositionSeconds int            `json:"position_seconds"`
	Positions       int            `json:"positions"`
	Completed       int            `json:"completed"`
	Outcome         SessionOutcome `json:"outcome"`
	StartedAt       time.Time      `json:"started_at"`
	EndedAt         time.Time      `json:"ended_at"`
}
