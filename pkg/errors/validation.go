package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateRange checks that lo <= hi, both are finite, and both lie inside [min, max].
// The name is used in the error message (e.g. "size", "wobble").
func ValidateRange(name string, lo, hi, min, max float64) error {
	if !finite(lo) || !finite(hi) {
		return New(ErrCodeInvalidConfig, "%s range must be finite, got [%g, %g]", name, lo, hi)
	}
	if lo > hi {
		return New(ErrCodeInvalidConfig, "%s range is inverted: min %g > max %g", name, lo, hi)
	}
	if lo < min || hi > max {
		return New(ErrCodeInvalidConfig, "%s range [%g, %g] outside allowed [%g, %g]", name, lo, hi, min, max)
	}
	return nil
}

// ValidatePositive checks that v is finite and strictly greater than zero.
func ValidatePositive(name string, v float64) error {
	if !finite(v) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateIntRange checks that min <= v <= max.
func ValidateIntRange(name string, v, min, max int) error {
	if v < min || v > max {
		return New(ErrCodeInvalidConfig, "%s must be between %d and %d, got %d", name, min, max, v)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
