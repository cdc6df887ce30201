package audit

import (
	"context"
	"time"
)

// Summary rekap audit rows over a window.
type Summary struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Failed         int `json:"failed"`
	ReviewRequired int `json:"review_required"`
	HighRisk       int `json:"high_risk"`
}

// Repository port (interface untuk persistence)
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Complete(ctx context.Context, e *Entry) error
	MarkFailed(ctx context.Context, id, reason string) error
	Get(ctx context.Context, id string) (*Entry, error)
	Latest(ctx context.Context, limit int) ([]*Entry, error)
	Summarize(ctx context.Context, sinceDays int) (Summary, error)

	// MarkStaleFailed reconciles rows stuck in processing longer than the
	// cutoff; returns how many rows were flipped to failed.
	MarkStaleFailed(ctx context.Context, olderThan time.Time) (int64, error)
}
