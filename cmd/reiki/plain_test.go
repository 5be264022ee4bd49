package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bensonlsp/reiki-timer/session"
)

func plainFrame(status session.Status, index, remaining int, label string) session.Frame {
	return session.Frame{
		Status:        status,
		Index:         index,
		Positions:     3,
		Remaining:     remaining,
		IndexLabel:    session.FormatIndex(index, 3),
		PositionLabel: label,
		RemainingText: session.FormatRemaining(remaining),
	}
}

func TestPlainRendererPrintsTransitions(t *testing.T) {
	var out bytes.Buffer
	r := newPlainRenderer(&out, 80, false)

	r.Render(plainFrame(session.StatusRunning, 0, 10, "Crown"))
	r.Render(plainFrame(session.StatusRunning, 0, 9, "Crown"))
	r.Render(plainFrame(session.StatusPaused, 0, 9, "Crown"))
	r.Render(plainFrame(session.StatusRunning, 0, 9, "Crown"))
	r.Render(plainFrame(session.StatusRunning, 1, 10, "Third eye"))
	r.Render(plainFrame(session.StatusCompleted, 2, 0, "Throat"))

	want := strings.Join([]string{
		"[1 / 3] Crown",
		"Paused.",
		"Resumed.",
		"[2 / 3] Third eye",
		"Session complete.",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("expected output\n%q\ngot\n%q", want, out.String())
	}
}

func TestPlainRendererRestartAfterCompletion(t *testing.T) {
	var out bytes.Buffer
	r := newPlainRenderer(&out, 80, false)

	r.Render(plainFrame(session.StatusRunning, 0, 0, "Crown"))
	r.Render(plainFrame(session.StatusCompleted, 0, 0, "Crown"))
	r.Render(plainFrame(session.StatusRunning, 0, 10, "Crown"))

	if got := strings.Count(out.String(), "[1 / 3] Crown"); got != 2 {
		t.Fatalf("expected the first position twice, got %d in %q", got, out.String())
	}
}

func TestPlainRendererLiveLine(t *testing.T) {
	var out bytes.Buffer
	r := newPlainRenderer(&out, 80, true)

	r.Render(plainFrame(session.StatusRunning, 0, 65, "Crown"))
	r.Render(plainFrame(session.StatusRunning, 1, 65, "Throat"))

	got := out.String()
	if !strings.Contains(got, "\r\x1b[K  1:05    0%") {
		t.Fatalf("expected live countdown, got %q", got)
	}
	if !strings.Contains(got, "\r\x1b[K[2 / 3] Throat\n") {
		t.Fatalf("expected live line cleared before the next position, got %q", got)
	}
}

func TestPlainRendererWrapsLongLabels(t *testing.T) {
	var out bytes.Buffer
	r := newPlainRenderer(&out, 20, false)

	r.Render(plainFrame(session.StatusRunning, 0, 10, "Hands on the lower back near the kidneys"))

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if len(line) > 20 {
			t.Fatalf("expected lines wrapped to 20 columns, got %q", line)
		}
	}
}

func TestPlainRendererSummary(t *testing.T) {
	start := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		summary session.Summary
		want    string
	}{
		{
			name: "finished",
			summary: session.Summary{
				Positions: 7,
				Completed: 7,
				Finished:  true,
				StartedAt: start,
				EndedAt:   start.Add(70 * time.Second),
			},
			want: "Completed 7 of 7 positions in 1m10s.\n",
		},
		{
			name: "aborted",
			summary: session.Summary{
				Positions: 12,
				Completed: 2,
				StartedAt: start,
				EndedAt:   start.Add(45 * time.Second),
			},
			want: "Aborted after 2 of 12 positions (45s).\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			newPlainRenderer(&out, 80, false).Summary(tc.summary)
			if out.String() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, out.String())
			}
		})
	}
}
