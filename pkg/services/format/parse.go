package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseNumber reads the longest numeric prefix of s, ignoring leading
// whitespace. Text with no numeric prefix yields 0.
func ParseNumber(s string) float64 {
	prefix := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if prefix == "" {
		return 0
	}

	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Truncate drops the fractional part. Non-finite values yield 0.
func Truncate(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Trunc(v))
}
