package db

import "strings"

// IsUniqueViolation reports whether the error is a unique constraint
// violation. When constraintName is given, the helper additionally requires
// the constraint text to appear in the message. The sqlite wording is
// matched too so repository tests behave like production.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
