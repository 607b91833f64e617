// internal/app/system/normalize/normalize.go
// Package normalize canonicalizes user-supplied identity fields before they
// are validated or stored.
package normalize

import "strings"

// Email trims surrounding whitespace and lower-cases the address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses internal runs of
// whitespace to a single space. Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CUID trims surrounding whitespace. Case is preserved so that a lower-case
// "c" prefix is still rejected by validation.
func CUID(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and upper-cases a role name ("admin" -> "ADMIN").
func Role(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
