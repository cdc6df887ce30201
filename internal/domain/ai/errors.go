package ai

import "errors"

// ErrUnavailable indicates no text-generation client is configured.
var ErrUnavailable = errors.New("ai client unavailable")

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")
