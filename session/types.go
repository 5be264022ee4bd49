package session

import (
	"time"

	"github.com/bensonlsp/reiki-timer/position"
)

// MinPositionSeconds is the shortest hold allowed per position.
const MinPositionSeconds = 10

// DefaultTickPeriod is the interval between countdown ticks.
const DefaultTickPeriod = time.Second

// Status represents the controller lifecycle state.
type Status string

const (
	// StatusIdle indicates no session is running.
	StatusIdle Status = "idle"
	// StatusRunning indicates the countdown is advancing.
	StatusRunning Status = "running"
	// StatusPaused indicates the countdown is held.
	StatusPaused Status = "paused"
	// StatusCompleted indicates every position has been held.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusIdle, StatusRunning, StatusPaused, StatusCompleted}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Active reports whether a session is in progress (running or paused).
func (s Status) Active() bool {
	return s == StatusRunning || s == StatusPaused
}

// Config is the immutable per-session configuration.
type Config struct {
	Sequence        position.Sequence
	PositionSeconds int
}

// PositionDuration returns the per-position hold as a duration.
func (c Config) PositionDuration() time.Duration {
	return time.Duration(c.PositionSeconds) * time.Second
}

// TotalSeconds returns the length of a full session.
func (c Config) TotalSeconds() int {
	return c.PositionSeconds * c.Sequence.Len()
}

// DurationFromPicker converts picker minutes and seconds into a per-position
// hold, clamped to MinPositionSeconds.
func DurationFromPicker(minutes, seconds int) int {
	if minutes < 0 {
		minutes = 0
	}
	if seconds < 0 {
		seconds = 0
	}
	total := minutes*60 + seconds
	if total < MinPositionSeconds {
		return MinPositionSeconds
	}
	return total
}

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	Status    Status
	Sequence  position.Name
	Index     int
	Positions int
	Remaining int
	Duration  int
	Paused    bool
	Advances  int
	Overall   float64
	Position  float64
}

// Frame is one display update.
type Frame struct {
	Status        Status
	Index         int
	Positions     int
	Remaining     int
	IndexLabel    string
	PositionLabel string
	RemainingText string
	Overall       float64
	Position      float64
}

// Summary describes a session that has ended.
type Summary struct {
	Sequence        position.Name
	PositionSeconds int
	Positions       int
	Completed       int
	Finished        bool
	StartedAt       time.Time
	EndedAt         time.Time
}
