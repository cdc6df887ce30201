package fraud

import (
	"context"

	"github.com/tradesafe/docsentinel/internal/domain/ai"
	domain "github.com/tradesafe/docsentinel/internal/domain/fraud"
)

// analyzeContent sends the document to the text-generation capability with a
// forensic-analyst prompt and turns the free-text reply into risk factors.
// An unconfigured generator degrades via the caller, not a pipeline failure.
func (s *Service) analyzeContent(ctx context.Context, sub domain.Submission) (analysis, error) {
	if s.Generator == nil {
		return analysis{}, ai.ErrUnavailable
	}

	text, err := s.Generator.Analyze(ctx, string(sub.DocumentType), sub.Content)
	if err != nil {
		return analysis{}, err
	}

	return analysis{
		summary: text,
		risks:   domain.ExtractContentRisks(text, domain.CategoryContent),
	}, nil
}
