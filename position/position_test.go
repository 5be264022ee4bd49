package position

import (
	"errors"
	"strings"
	"testing"
)

func TestBuiltInSequenceLengths(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{name: "full", want: 12},
		{name: "chakra", want: 7},
		{name: " Chakra ", want: 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq, err := Lookup(tc.name)
			if err != nil {
				t.Fatalf("lookup %q: %v", tc.name, err)
			}
			if seq.Len() != tc.want {
				t.Fatalf("expected %d positions, got %d", tc.want, seq.Len())
			}
		})
	}
}

func TestLookupUnknownSequence(t *testing.T) {
	_, err := Lookup("toes")
	if !errors.Is(err, ErrUnknownSequence) {
		t.Fatalf("expected ErrUnknownSequence, got %v", err)
	}
	if !strings.Contains(err.Error(), "full, chakra") {
		t.Fatalf("expected valid names in error, got %q", err.Error())
	}
}

func TestPositionsAreIndexed(t *testing.T) {
	for _, seq := range []Sequence{Full, Chakra} {
		for i, p := range seq.Positions() {
			if p.Index != i {
				t.Fatalf("%s: position %d has index %d", seq.Name(), i, p.Index)
			}
			if p.Label == "" {
				t.Fatalf("%s: position %d has empty label", seq.Name(), i)
			}
		}
	}
}

func TestPositionsReturnsCopy(t *testing.T) {
	positions := Chakra.Positions()
	positions[0].Label = "changed"

	first, ok := Chakra.At(0)
	if !ok {
		t.Fatalf("expected position 0")
	}
	if first.Label != "Crown" {
		t.Fatalf("expected catalog to be unchanged, got %q", first.Label)
	}
}

func TestAtOutOfRange(t *testing.T) {
	if _, ok := Full.At(-1); ok {
		t.Fatalf("expected no position at -1")
	}
	if _, ok := Full.At(Full.Len()); ok {
		t.Fatalf("expected no position past the end")
	}
}

func TestMarkdownListsEveryPosition(t *testing.T) {
	out := Chakra.Markdown()
	if !strings.HasPrefix(out, "# chakra (7 positions)") {
		t.Fatalf("unexpected heading: %q", out)
	}
	if !strings.Contains(out, "7. Root\n") {
		t.Fatalf("expected last position in markdown, got %q", out)
	}
}
