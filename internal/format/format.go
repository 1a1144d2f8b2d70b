package format

import (
	"fmt"
	"strings"
	"time"
)

// RelativeTime renders t relative to now, e.g. "3 hours ago".
// Zero times render as "-".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	if d < 0 {
		return "just now"
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month")
	default:
		return plural(int(d/(365*24*time.Hour)), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// ShortDID abbreviates a DID to its first and last characters for tables.
// DIDs of 16 characters or fewer are returned unchanged.
func ShortDID(did string) string {
	if len(did) <= 16 {
		return did
	}
	return did[:8] + "…" + did[len(did)-6:]
}

// SanitizeForPath replaces characters that are problematic in file paths
// and repository names.
// Replaces: / \ : * ? " < > | and whitespace with -
func SanitizeForPath(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
		" ", "-",
		"\t", "-",
	)
	return replacer.Replace(name)
}
