package validation

import (
	"fmt"
	"strings"
)

// FormatValidValues joins string-like values for error messages.
func FormatValidValues[T ~string](values []T) string {
	formatted := make([]string, 0, len(values))
	for _, value := range values {
		formatted = append(formatted, string(value))
	}
	return strings.Join(formatted, ", ")
}

// FormatInvalidValueError wraps base with the rejected value and the valid choices.
func FormatInvalidValueError[T ~string](base error, value T, valid []T) error {
	return fmt.Errorf("%w: %q (valid: %s)", base, value, FormatValidValues(valid))
}

// FormatStepError wraps base with a value that is not a multiple of step.
func FormatStepError(base error, field string, value, step int) error {
	return fmt.Errorf("%w: %s %d is not a multiple of %d", base, field, value, step)
}

// FormatRangeError wraps base with the rejected value and the allowed range.
func FormatRangeError(base error, field string, value, min, max int) error {
	return fmt.Errorf("%w: %s %d out of range [%d, %d]", base, field, value, min, max)
}
