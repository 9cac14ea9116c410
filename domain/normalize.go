package domain

import "strings"

// NormalizeEmail returns the canonical form of an email address used for
// uniqueness checks and lookups: surrounding space trimmed, whole address lower-cased.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
