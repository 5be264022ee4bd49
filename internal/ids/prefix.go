package ids

import (
	"slices"
	"strings"
)

// UniquePrefixLengths maps each lowercased ID to the length of the shortest
// prefix no other ID shares. Empty and repeated IDs are skipped.
func UniquePrefixLengths(ids []string) map[string]int {
	sorted := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		lower := strings.ToLower(id)
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		sorted = append(sorted, lower)
	}
	slices.Sort(sorted)

	// After sorting, the longest prefix an ID shares is with a neighbour.
	lengths := make(map[string]int, len(sorted))
	for i, id := range sorted {
		shared := 0
		if i > 0 {
			shared = max(shared, commonPrefixLength(id, sorted[i-1]))
		}
		if i+1 < len(sorted) {
			shared = max(shared, commonPrefixLength(id, sorted[i+1]))
		}
		lengths[id] = min(shared+1, len(id))
	}
	return lengths
}

func commonPrefixLength(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
