package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePrice parses a toman amount typed by a human: plain digits,
// optionally grouped with commas ("50,000"). Negative amounts and
// anything non-numeric are rejected.
func ParsePrice(raw string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty price")
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative price %d", v)
	}
	return v, nil
}

// FormatPrice renders a toman amount with thousands separators.
func FormatPrice(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
