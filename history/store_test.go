package history

import (
	"errors"
	"testing"
	"time"

	statestore "github.com/bensonlsp/reiki-timer/internal/state"
	"github.com/bensonlsp/reiki-timer/position"
	"github.com/bensonlsp/reiki-timer/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenWithOptions(Options{StateDir: t.TempDir()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func summaryAt(start time.Time, finished bool) session.Summary {
	completed := 3
	if finished {
		completed = 7
	}
	return session.Summary{
		Sequence:        position.NameChakra,
		PositionSeconds: 60,
		Positions:       7,
		Completed:       completed,
		Finished:        finished,
		StartedAt:       start,
		EndedAt:         start.Add(time.Duration(completed) * time.Minute),
	}
}

func TestStore_AppendAndList(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	first, err := store.Append(summaryAt(start, true))
	if err != nil {
		t.Fatalf("append first: %v", err)
	}
	if first.Outcome != OutcomeCompleted {
		t.Fatalf("expected completed outcome, got %q", first.Outcome)
	}
	if len(first.ID) != 8 {
		t.Fatalf("expected 8 character id, got %q", first.ID)
	}

	second, err := store.Append(summaryAt(start.Add(time.Hour), false))
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if second.Outcome != OutcomeAborted {
		t.Fatalf("expected aborted outcome, got %q", second.Outcome)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %q then %q", list[0].ID, list[1].ID)
	}
	if list[1].Sequence != "chakra" || list[1].Completed != 7 {
		t.Fatalf("unexpected record: %+v", list[1])
	}
}

func TestStore_AppendSameStartGetsDistinctIDs(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	a, err := store.Append(summaryAt(start, true))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	b, err := store.Append(summaryAt(start, true))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both %q", a.ID)
	}
}

func TestStore_FindMatchesPrefix(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	record, err := store.Append(summaryAt(start, true))
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	found, err := store.Find(record.ID[:4])
	if err != nil {
		t.Fatalf("find by prefix: %v", err)
	}
	if found.ID != record.ID {
		t.Fatalf("expected %q, got %q", record.ID, found.ID)
	}

	found, err = store.Find(record.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.ID != record.ID {
		t.Fatalf("expected %q, got %q", record.ID, found.ID)
	}
}

func TestStore_FindPrefersExactMatch(t *testing.T) {
	store := openTestStore(t)
	err := store.stateStore.Update(func(st *statestore.State) error {
		for _, id := range []string{"k3x9", "k3x9a2m1", "k3x9b7q2"} {
			st.Sessions[id] = Record{ID: id, Sequence: "full", Outcome: OutcomeCompleted}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed state: %v", err)
	}

	// Map order is random, so repeat to cover every visiting order.
	for i := 0; i < 20; i++ {
		found, err := store.Find("K3X9")
		if err != nil {
			t.Fatalf("find exact id: %v", err)
		}
		if found.ID != "k3x9" {
			t.Fatalf("expected exact match k3x9, got %q", found.ID)
		}
	}

	found, err := store.Find("k3x9b")
	if err != nil || found.ID != "k3x9b7q2" {
		t.Fatalf("expected k3x9b7q2, got %q (%v)", found.ID, err)
	}
	if _, err := store.Find("k3x"); !errors.Is(err, ErrAmbiguousPrefix) {
		t.Fatalf("expected ambiguous prefix, got %v", err)
	}
}

func TestStore_FindErrors(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	for i := 0; i < 40; i++ {
		if _, err := store.Append(summaryAt(start.Add(time.Duration(i)*time.Minute), true)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if _, err := store.Find(""); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected not found for empty id, got %v", err)
	}
	if _, err := store.Find("zzzzzzzzz"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// 40 ids over a 32-letter alphabet must share a first character.
	list, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	counts := map[byte]int{}
	var shared byte
	for _, record := range list {
		counts[record.ID[0]]++
		if counts[record.ID[0]] > 1 {
			shared = record.ID[0]
		}
	}
	if _, err := store.Find(string(shared)); !errors.Is(err, ErrAmbiguousPrefix) {
		t.Fatalf("expected ambiguous prefix, got %v", err)
	}
}

func TestDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	record := Record{StartedAt: start, EndedAt: start.Add(90 * time.Second)}
	if got := Duration(record); got != 90*time.Second {
		t.Fatalf("expected 1m30s, got %v", got)
	}
	if got := Duration(Record{}); got != 0 {
		t.Fatalf("expected zero duration, got %v", got)
	}
}
