// Package position defines the fixed catalogs of hand positions and chakra
// points a healing session walks through.
package position

import (
	"fmt"
	"strings"

	internalstrings "github.com/bensonlsp/reiki-timer/internal/strings"
	"github.com/bensonlsp/reiki-timer/internal/validation"
)

// Position is one element of a sequence.
type Position struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// Name identifies a built-in sequence.
type Name string

const (
	// NameFull is the twelve-position full-body sequence.
	NameFull Name = "full"
	// NameChakra is the seven-point chakra sequence.
	NameChakra Name = "chakra"
)

// Names returns all valid sequence names.
func Names() []Name {
	return []Name{NameFull, NameChakra}
}

// IsValid returns true if the name is a known sequence.
func (n Name) IsValid() bool {
	for _, valid := range Names() {
		if n == valid {
			return true
		}
	}
	return false
}

// Sequence is an ordered, immutable list of positions.
type Sequence struct {
	name      Name
	positions []Position
}

// New builds a sequence from labels, assigning 0-based indexes.
// Runs of whitespace inside a label collapse to one space.
func New(name Name, labels ...string) Sequence {
	positions := make([]Position, len(labels))
	for i, label := range labels {
		positions[i] = Position{Index: i, Label: internalstrings.NormalizeWhitespace(label)}
	}
	return Sequence{name: name, positions: positions}
}

// Name returns the sequence name.
func (s Sequence) Name() Name {
	return s.name
}

// Len returns the number of positions.
func (s Sequence) Len() int {
	return len(s.positions)
}

// At returns the position at index i.
func (s Sequence) At(i int) (Position, bool) {
	if i < 0 || i >= len(s.positions) {
		return Position{}, false
	}
	return s.positions[i], true
}

// Positions returns a copy of the positions.
func (s Sequence) Positions() []Position {
	return append([]Position(nil), s.positions...)
}

// Full is the full-body hand position sequence.
var Full = New(NameFull,
	"Forehead (third eye)",
	"Both ears",
	"Back of the head",
	"Throat",
	"Heart",
	"Solar plexus (stomach)",
	"Sacral (abdomen)",
	"Root (front)",
	"Both shoulders",
	"Solar plexus (back)",
	"Sacral (back)",
	"Root (back)",
)

// Chakra is the seven chakra points, crown to root.
var Chakra = New(NameChakra,
	"Crown",
	"Third eye",
	"Throat",
	"Heart",
	"Solar plexus",
	"Sacral",
	"Root",
)

// Lookup returns the built-in sequence with the given name.
func Lookup(name string) (Sequence, error) {
	switch Name(internalstrings.NormalizeLowerTrimSpace(name)) {
	case NameFull:
		return Full, nil
	case NameChakra:
		return Chakra, nil
	}
	return Sequence{}, validation.FormatInvalidValueError(ErrUnknownSequence, Name(name), Names())
}

// Markdown renders the sequence as a numbered markdown list.
func (s Sequence) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%d positions)\n\n", s.name, len(s.positions))
	for _, p := range s.positions {
		fmt.Fprintf(&b, "%d. %s\n", p.Index+1, p.Label)
	}
	return b.String()
}
