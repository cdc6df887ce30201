package ai

import "context"

// Client is the text-generation capability used by the content analyzer.
// Implementations return free-form analysis text for the given document.
type Client interface {
	Analyze(ctx context.Context, documentType, content string) (string, error)
}
