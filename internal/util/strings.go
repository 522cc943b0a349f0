package util

// Truncate shortens s to at most max bytes.
// Returns s unchanged when it already fits or max is not positive.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
