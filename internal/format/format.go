// Package format turns optional fields into display strings, or reports
// that there is nothing to display.
package format

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// Separators used across the page.
const (
	Bullet = " • "
	Dot    = " · "
)

// Join joins the non-blank parts with sep. ok is false when no part is
// present, in which case the caller omits the node.
func Join(sep string, parts ...string) (s string, ok bool) {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, sep), true
}

// Labeled prefixes value with label, or returns "" for a blank value.
func Labeled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + " " + value
}

// Count renders "n noun". Zero uses the fallback copy instead of printing
// a zero count.
func Count(n int, singular, plural, fallback string) string {
	switch {
	case n <= 0:
		return fallback
	case n == 1:
		return "1 " + singular
	default:
		return humanize.Comma(int64(n)) + " " + plural
	}
}
