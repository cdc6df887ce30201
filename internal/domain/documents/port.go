package documents

import (
	"context"
	"time"
)

// Repository port for the prior-submission corpus.
type Repository interface {
	// Save records a submission. Called by the onboarding glue, never by
	// the analysis pipeline itself.
	Save(ctx context.Context, d *Document) error

	// ListByOtherSubmitters returns all documents not belonging to the
	// given submitter, for duplicate detection.
	ListByOtherSubmitters(ctx context.Context, submitterID string) ([]*Document, error)

	// ListBySubmitter returns the submitter's own prior documents, for
	// consistency checking.
	ListBySubmitter(ctx context.Context, submitterID string) ([]*Document, error)

	// CountBySubmitterBetween counts the submitter's uploads inside a time
	// window, for velocity detection.
	CountBySubmitterBetween(ctx context.Context, submitterID string, from, to time.Time) (int, error)
}
