package ids

import (
	"testing"
	"time"
)

var sessionStart = time.Date(2024, 3, 2, 9, 12, 0, 0, time.UTC)

func TestForSessionAlphabet(t *testing.T) {
	id := ForSession("chakra", sessionStart, 0)

	if len(id) != Length {
		t.Fatalf("expected ID length %d, got %d: %q", Length, len(id), id)
	}
	for _, c := range id {
		if !((c >= 'a' && c <= 'z') || (c >= '2' && c <= '7')) {
			t.Errorf("ID contains invalid character %q: %q", c, id)
		}
	}
}

func TestForSessionIsDeterministic(t *testing.T) {
	if ForSession("full", sessionStart, 0) != ForSession("full", sessionStart.In(time.FixedZone("x", 3600)), 0) {
		t.Error("the same instant in another zone should produce the same ID")
	}

	cases := []struct {
		name     string
		sequence string
		start    time.Time
		attempt  int
	}{
		{name: "sequence", sequence: "chakra", start: sessionStart},
		{name: "start", sequence: "full", start: sessionStart.Add(time.Nanosecond)},
		{name: "attempt", sequence: "full", start: sessionStart, attempt: 1},
	}
	base := ForSession("full", sessionStart, 0)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if ForSession(tc.sequence, tc.start, tc.attempt) == base {
				t.Fatalf("expected a different ID when the %s changes", tc.name)
			}
		})
	}
}

func TestNewSessionSkipsTakenIDs(t *testing.T) {
	taken := map[string]bool{
		ForSession("full", sessionStart, 0): true,
		ForSession("full", sessionStart, 1): true,
	}

	id := NewSession("full", sessionStart, func(id string) bool { return taken[id] })
	if want := ForSession("full", sessionStart, 2); id != want {
		t.Fatalf("expected third attempt %q, got %q", want, id)
	}

	if got := NewSession("full", sessionStart, nil); got != ForSession("full", sessionStart, 0) {
		t.Fatalf("expected first attempt with no lookup, got %q", got)
	}
}
