package text

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts s the way a loose numeric field is read: surrounding
// whitespace is ignored, an empty string is zero and anything unparseable
// is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// ParseLeadingInt reads the base-10 integer prefix of s.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseNumericSet reads a space-separated per-level list. Duplicates are
// dropped keeping the first occurrence, unparseable entries are skipped and,
// with positiveOnly, values <= 0 are removed.
func ParseNumericSet(s string, positiveOnly bool) []float64 {
	parts := strings.Split(s, " ")
	out := make([]float64, 0, len(parts))
	seen := make(map[float64]struct{}, len(parts))
	for _, p := range parts {
		v := ParseNumber(p)
		if math.IsNaN(v) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if !positiveOnly {
		return out
	}
	positive := out[:0]
	for _, v := range out {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	return positive
}
