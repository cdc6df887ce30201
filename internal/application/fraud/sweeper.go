package fraud

import (
	"context"
	"log"
	"time"

	"github.com/tradesafe/docsentinel/internal/domain/audit"
)

// Sweeper reconciles audit rows left in processing by a crash between the
// create and the terminal update. The two-phase write is not transactional;
// this sweep is what guarantees every row eventually reaches a terminal state.
type Sweeper struct {
	Audit      audit.Repository
	Interval   time.Duration
	StaleAfter time.Duration
}

// Run sweeps on a ticker until ctx is canceled.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep marks processing rows older than StaleAfter as failed.
func (s *Sweeper) Sweep(ctx context.Context) {
	stale := s.StaleAfter
	if stale <= 0 {
		stale = 15 * time.Minute
	}
	cutoff := time.Now().Add(-stale)

	n, err := s.Audit.MarkStaleFailed(ctx, cutoff)
	if err != nil {
		log.Printf("audit sweep error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("audit sweep: marked %d stale processing rows failed", n)
	}
}
