// Package history records sessions that have ended.
package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bensonlsp/reiki-timer/internal/ids"
	"github.com/bensonlsp/reiki-timer/internal/paths"
	statestore "github.com/bensonlsp/reiki-timer/internal/state"
	"github.com/bensonlsp/reiki-timer/session"
)

// Record is a finished session as stored in the state file.
type Record = statestore.Session

// Outcome describes how a session ended.
type Outcome = statestore.SessionOutcome

const (
	// OutcomeCompleted indicates every position was held.
	OutcomeCompleted = statestore.SessionCompleted
	// OutcomeAborted indicates the session was stopped early.
	OutcomeAborted = statestore.SessionAborted
)

// Store reads and writes session history.
type Store struct {
	stateStore *statestore.Store
}

// Options configures a history store.
type Options struct {
	// StateDir is the directory where state is stored.
	// Defaults to ~/.local/state/reiki-timer if empty.
	StateDir string
}

// Open creates a store with default options.
func Open() (*Store, error) {
	return OpenWithOptions(Options{})
}

// OpenWithOptions creates a store with custom options.
func OpenWithOptions(opts Options) (*Store, error) {
	stateDir := opts.StateDir
	if stateDir == "" {
		var err error
		stateDir, err = paths.DefaultStateDir()
		if err != nil {
			return nil, err
		}
	}

	return &Store{stateStore: statestore.NewStore(stateDir)}, nil
}

// Append stores the summary of a session that has ended.
func (s *Store) Append(summary session.Summary) (Record, error) {
	outcome := OutcomeAborted
	if summary.Finished {
		outcome = OutcomeCompleted
	}

	var created Record
	err := s.stateStore.Update(func(st *statestore.State) error {
		id := ids.NewSession(string(summary.Sequence), summary.StartedAt, func(id string) bool {
			_, exists := st.Sessions[id]
			return exists
		})

		created = Record{
			ID:              id,
			Sequence:        string(summary.Sequence),
			PositionSeconds: summary.PositionSeconds,
			Positions:       summary.Positions,
			Completed:       summary.Completed,
			Outcome:         outcome,
			StartedAt:       summary.StartedAt,
			EndedAt:         summary.EndedAt,
		}
		st.Sessions[id] = created
		return nil
	})
	if err != nil {
		return Record{}, fmt.Errorf("append session: %w", err)
	}

	return created, nil
}

// List returns every recorded session, newest first.
func (s *Store) List() ([]Record, error) {
	st, err := s.stateStore.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	items := make([]Record, 0, len(st.Sessions))
	for _, record := range st.Sessions {
		items = append(items, record)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].StartedAt.Equal(items[j].StartedAt) {
			return items[i].StartedAt.After(items[j].StartedAt)
		}
		return items[i].ID < items[j].ID
	})

	return items, nil
}

// Find returns the session whose id matches or starts with id.
func (s *Store) Find(id string) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, ErrRecordNotFound
	}

	st, err := s.stateStore.Load()
	if err != nil {
		return Record{}, fmt.Errorf("load state: %w", err)
	}

	needle := strings.ToLower(id)
	for _, record := range st.Sessions {
		if strings.ToLower(record.ID) == needle {
			return record, nil
		}
	}

	var match *Record
	for _, record := range st.Sessions {
		if !strings.HasPrefix(strings.ToLower(record.ID), needle) {
			continue
		}
		if match != nil {
			return Record{}, fmt.Errorf("%w: %s", ErrAmbiguousPrefix, id)
		}
		matched := record
		match = &matched
	}

	if match == nil {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	return *match, nil
}

// Duration reports how long the session ran.
func Duration(record Record) time.Duration {
	if record.StartedAt.IsZero() || record.EndedAt.Before(record.StartedAt) {
		return 0
	}
	return record.EndedAt.Sub(record.StartedAt)
}
