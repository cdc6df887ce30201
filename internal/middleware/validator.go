package middleware

import (
	"fmt"
	"regexp"
	"strings"

	fraud "github.com/tradesafe/docsentinel/internal/domain/fraud"
)

// Input validation and sanitization utilities. Validation failures wrap
// fraud.ErrInvalidInput so the HTTP layer can map them to 400.

var (
	submitterIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	analysisIDRe  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
)

// ValidateSubmitterID checks the submitter identifier format
func ValidateSubmitterID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: submitter id cannot be empty", fraud.ErrInvalidInput)
	}
	if !submitterIDRe.MatchString(id) {
		return fmt.Errorf("%w: invalid submitter id format (alphanumeric, dash, underscore only, max 64 chars)", fraud.ErrInvalidInput)
	}
	return nil
}

// ValidateAnalysisID checks the analysis/audit row identifier format
func ValidateAnalysisID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: analysis id cannot be empty", fraud.ErrInvalidInput)
	}
	if !analysisIDRe.MatchString(id) {
		return fmt.Errorf("%w: invalid analysis id format", fraud.ErrInvalidInput)
	}
	return nil
}

// SanitizeString removes null bytes and control characters from user input
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit clamps pagination limits
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays clamps the summary window
func ValidateDays(days int) int {
	if days <= 0 {
		return 7 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}
