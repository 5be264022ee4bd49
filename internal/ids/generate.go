package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"strconv"
	"time"

	internalstrings "github.com/bensonlsp/reiki-timer/internal/strings"
)

// Length is the number of characters in a session ID.
const Length = 8

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ForSession derives a lowercase base32 session ID from the sequence name and
// start time. A non-zero attempt perturbs the seed for collision retries.
func ForSession(sequence string, startedAt time.Time, attempt int) string {
	seed := sequence + "@" + startedAt.UTC().Format(time.RFC3339Nano)
	if attempt > 0 {
		seed += "#" + strconv.Itoa(attempt)
	}
	sum := sha256.Sum256([]byte(seed))
	return internalstrings.NormalizeLower(encoding.EncodeToString(sum[:])[:Length])
}

// NewSession returns the first session ID that taken does not report as used.
func NewSession(sequence string, startedAt time.Time, taken func(id string) bool) string {
	for attempt := 0; ; attempt++ {
		id := ForSession(sequence, startedAt, attempt)
		if taken == nil || !taken(id) {
			return id
		}
	}
}
