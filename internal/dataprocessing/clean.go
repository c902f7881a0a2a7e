package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var parenthesizedPattern = regexp.MustCompile(`\([^)]*\)`)

// CleanInstitutionName normalizes an institution name: parenthesized text is
// removed first, then "Boys" and "Girls" are abbreviated, then the result is
// trimmed. The order matters: "(Boys)" disappears entirely instead of
// becoming "(B)".
func CleanInstitutionName(name string) string {
	return strings.TrimSpace(abbreviateGender(stripParenthesized(name)))
}

func stripParenthesized(s string) string {
	return parenthesizedPattern.ReplaceAllString(s, "")
}

func abbreviateGender(s string) string {
	s = strings.ReplaceAll(s, "Boys", "B")
	return strings.ReplaceAll(s, "Girls", "G")
}

// CoerceInt converts a cell to an integer. Integer text parses as-is and
// decimal text is truncated toward zero. Anything else, including empty
// cells and "NA", yields 0.
func CoerceInt(cell string) int {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int(f)
}
