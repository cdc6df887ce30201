package fraud

import (
	"context"
	"fmt"

	domain "github.com/tradesafe/docsentinel/internal/domain/fraud"
)

// duplicateThreshold: token-set similarity above this counts as a duplicate.
const duplicateThreshold = 0.8

// checkDuplicates scans for template/placeholder content and compares the
// submission against every prior document from other submitters. The
// similarity scan stops at the first match.
func (s *Service) checkDuplicates(ctx context.Context, sub domain.Submission) (analysis, error) {
	risks := domain.TemplateRisks(sub.Content)

	others, err := s.Documents.ListByOtherSubmitters(ctx, sub.SubmitterID)
	if err != nil {
		return analysis{}, err
	}

	for _, doc := range others {
		if doc.Content == "" {
			continue
		}
		if domain.JaccardSimilarity(sub.Content, doc.Content) > duplicateThreshold {
			risks = append(risks, domain.RiskFactor{
				Category:    domain.CategoryPlagiarism,
				Severity:    domain.SeverityHigh,
				Description: "Document appears to be duplicate of another submission",
				Evidence:    fmt.Sprintf("Similar to document from submitter %s", doc.SubmitterID),
			})
			break
		}
	}

	return analysis{
		summary: fmt.Sprintf("Plagiarism check found %d potential issues", len(risks)),
		risks:   risks,
	}, nil
}
