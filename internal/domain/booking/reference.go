package booking

import (
	"fmt"
	"regexp"
)

// Reference prefixes per booking kind; all share one generator.
const (
	PrefixBooking   = "CS"
	PrefixPickup    = "PO"
	PrefixConcierge = "CR"
)

var referencePattern = regexp.MustCompile(`^[A-Z]{2,5}-\d{4}-\d{6}$`)

// FormatReference renders the wire-visible PREFIX-YYYY-NNNNNN form,
// e.g. CS-2025-000042.
func FormatReference(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%04d-%06d", prefix, year, seq)
}

// ValidReference reports whether s matches the reference format.
func ValidReference(s string) bool {
	return referencePattern.MatchString(s)
}
