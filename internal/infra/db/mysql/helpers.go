package mysql

import "strings"

// Column helpers shared by the audit and document repositories.

// stringOrDash keeps identifier columns non-empty; "-" marks a value the
// caller never supplied.
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// jsonOr backfills a blank JSON column with the given empty value:
// "[]" for suspicious_elements, "{}" for analysis_result.
func jsonOr(s, empty string) string {
	if strings.TrimSpace(s) == "" {
		return empty
	}
	return s
}
