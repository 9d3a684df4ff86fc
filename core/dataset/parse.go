package dataset

import (
	"strconv"
	"strings"
	"time"
)

// ParseIDList parses a textual list encoding such as "[1, 2, 3]" or
// "['a', 'b']" into its elements. It is total: the second return value is
// false when the input is not a recognizable list, and the element slice is
// then empty. An empty or whitespace-only cell counts as an absent value and
// parses to an empty list without being flagged.
func ParseIDList(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, false
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, true
	}
	parts := strings.Split(body, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `'"`)
		if p == "" {
			return nil, false
		}
		ids = append(ids, p)
	}
	return ids, true
}

// parseEpoch converts an epoch-second cell to UTC time. Empty cells and
// non-numeric placeholders map to the zero time. Fractional seconds, as
// written by some exporters, are truncated.
func parseEpoch(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return time.Time{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(f), 0).UTC()
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string, fallback int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	// Some exporters write integral ids as floats ("123.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return fallback
}

func parseBoolish(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "1.0":
		return 1
	default:
		return 0
	}
}
