package fraud

import (
	"context"
	"fmt"
	"regexp"
	"time"

	domain "github.com/tradesafe/docsentinel/internal/domain/fraud"
)

const (
	// minDocumentBytes: files under this size are implausibly small for a
	// business document.
	minDocumentBytes = 1000

	velocityWindow = 5 * time.Minute
	velocityLimit  = 5
)

var suspiciousFilenameRe = regexp.MustCompile(`(?i)template|fake|copy|duplicate|test`)

// analyzeMetadata runs the upload heuristics. A submission without metadata
// yields zero factors, not an error.
func (s *Service) analyzeMetadata(ctx context.Context, sub domain.Submission) (analysis, error) {
	md := sub.Metadata
	if md == nil {
		return analysis{summary: "Metadata analysis completed"}, nil
	}

	var risks []domain.RiskFactor

	if md.FileSizeBytes > 0 && md.FileSizeBytes < minDocumentBytes {
		risks = append(risks, domain.RiskFactor{
			Category:    domain.CategoryMetadata,
			Severity:    domain.SeverityMedium,
			Description: "Unusually small file size for document type",
			Evidence:    fmt.Sprintf("File size: %d bytes", md.FileSizeBytes),
		})
	}

	if md.Filename != "" && suspiciousFilenameRe.MatchString(md.Filename) {
		risks = append(risks, domain.RiskFactor{
			Category:    domain.CategoryMetadata,
			Severity:    domain.SeverityHigh,
			Description: "Suspicious filename pattern",
			Evidence:    fmt.Sprintf("Filename: %s", md.Filename),
		})
	}

	if !md.UploadTimestamp.IsZero() {
		from := md.UploadTimestamp.Add(-velocityWindow)
		count, err := s.Documents.CountBySubmitterBetween(ctx, sub.SubmitterID, from, md.UploadTimestamp)
		if err != nil {
			return analysis{}, err
		}
		if count > velocityLimit {
			risks = append(risks, domain.RiskFactor{
				Category:    domain.CategoryMetadata,
				Severity:    domain.SeverityHigh,
				Description: "Unusually rapid document submissions",
				Evidence:    fmt.Sprintf("%d documents uploaded in last 5 minutes", count),
			})
		}
	}

	return analysis{summary: "Metadata analysis completed", risks: risks}, nil
}
