package session

import "fmt"

// OverallProgress returns the fraction of the whole session that has elapsed.
func OverallProgress(index, remaining, duration, positions int) float64 {
	if duration <= 0 || positions <= 0 {
		return 0
	}
	elapsed := index*duration + (duration - remaining)
	return clampFraction(float64(elapsed) / float64(positions*duration))
}

// PositionProgress returns the fraction of the current position that has elapsed.
func PositionProgress(remaining, duration int) float64 {
	if duration <= 0 {
		return 0
	}
	return clampFraction(float64(duration-remaining) / float64(duration))
}

// FormatRemaining formats seconds as m:ss.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatIndex formats a 0-based index as "n / total".
func FormatIndex(index, total int) string {
	return fmt.Sprintf("%d / %d", index+1, total)
}

func clampFraction(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
