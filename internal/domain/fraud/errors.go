package fraud

import "errors"

// ErrInvalidInput indicates a malformed submission (empty content or unknown
// document type). Fails fast; no audit row is created.
var ErrInvalidInput = errors.New("invalid submission input")
