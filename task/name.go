package task

import "strings"

// normalizeName trims whitespace. Empty names resolve to DefaultName at
// spawn time.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
