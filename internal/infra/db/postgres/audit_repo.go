package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/tradesafe/docsentinel/internal/domain/audit"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts the initial processing row for one analysis attempt.
func (r *AuditRepository) Create(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO fraud_audit_log
 (id, submitter_id, document_type, status, confidence_score, risk_level,
  suspicious_elements, analysis_result, review_required, failure_reason,
  report_url, source_ip, user_agent, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15);`

	submitter := stringOrDash(e.SubmitterID)
	docType := stringOrDash(e.DocumentType)
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := e.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	_, err := r.db.ExecContext(ctx, q,
		e.ID, submitter, docType, e.Status, e.ConfidenceScore, e.RiskLevel,
		jsonOr(e.SuspiciousElements, "[]"), jsonOr(e.AnalysisResult, "{}"),
		e.ReviewRequired, e.FailureReason,
		e.ReportURL, e.SourceIP, e.UserAgent, created, updated,
	)
	return err
}

// Complete writes the terminal state; only a processing row is updated.
func (r *AuditRepository) Complete(ctx context.Context, e *domain.Entry) error {
	const q = `
UPDATE fraud_audit_log
SET status = $1,
    confidence_score = $2,
    risk_level = $3,
    suspicious_elements = $4,
    analysis_result = $5,
    review_required = $6,
    report_url = $7,
    updated_at = $8
WHERE id = $9 AND status = 'processing';`

	updated := e.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	res, err := r.db.ExecContext(ctx, q,
		e.Status, e.ConfidenceScore, e.RiskLevel,
		jsonOr(e.SuspiciousElements, "[]"), jsonOr(e.AnalysisResult, "{}"),
		e.ReviewRequired, e.ReportURL, updated, e.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkFailed flips a processing row to failed with a reason.
func (r *AuditRepository) MarkFailed(ctx context.Context, id, reason string) error {
	const q = `
UPDATE fraud_audit_log
SET status = 'failed', failure_reason = $1, updated_at = $2
WHERE id = $3 AND status = 'processing';`
	_, err := r.db.ExecContext(ctx, q, reason, time.Now(), id)
	return err
}

// Get by ID
func (r *AuditRepository) Get(ctx context.Context, id string) (*domain.Entry, error) {
	const q = auditSelect + ` WHERE id = $1 LIMIT 1;`
	return scanEntry(r.db.QueryRowContext(ctx, q, id))
}

// Latest entries, newest first
func (r *AuditRepository) Latest(ctx context.Context, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = auditSelect + ` ORDER BY created_at DESC, id DESC LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Summarize audit activity since N days
func (r *AuditRepository) Summarize(ctx context.Context, sinceDays int) (domain.Summary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)

	const q = `
SELECT COUNT(*) AS total,
       COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END),0) AS completed,
       COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END),0)    AS failed,
       COALESCE(SUM(CASE WHEN review_required THEN 1 ELSE 0 END),0)      AS review_required,
       COALESCE(SUM(CASE WHEN risk_level = 'high' THEN 1 ELSE 0 END),0)  AS high_risk
FROM fraud_audit_log
WHERE created_at >= $1;`

	var s domain.Summary
	err := r.db.QueryRowContext(ctx, q, cut).Scan(&s.Total, &s.Completed, &s.Failed, &s.ReviewRequired, &s.HighRisk)
	return s, err
}

// MarkStaleFailed reconciles rows orphaned in processing by a crash.
func (r *AuditRepository) MarkStaleFailed(ctx context.Context, olderThan time.Time) (int64, error) {
	const q = `
UPDATE fraud_audit_log
SET status = 'failed',
    failure_reason = 'stale processing row reconciled by sweep',
    updated_at = $1
WHERE status = 'processing' AND created_at < $2;`
	res, err := r.db.ExecContext(ctx, q, time.Now(), olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const auditSelect = `
SELECT id, submitter_id, document_type, status, confidence_score, risk_level,
       suspicious_elements, analysis_result, review_required, failure_reason,
       report_url, source_ip, user_agent, created_at, updated_at
FROM fraud_audit_log`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var e domain.Entry
	if err := row.Scan(
		&e.ID, &e.SubmitterID, &e.DocumentType, &e.Status, &e.ConfidenceScore, &e.RiskLevel,
		&e.SuspiciousElements, &e.AnalysisResult, &e.ReviewRequired, &e.FailureReason,
		&e.ReportURL, &e.SourceIP, &e.UserAgent, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// stringOrDash keeps identifier columns non-empty; "-" marks a value the
// caller never supplied.
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// jsonOr backfills a blank JSON column with the given empty value:
// "[]" for suspicious_elements, "{}" for analysis_result.
func jsonOr(s, empty string) string {
	if strings.TrimSpace(s) == "" {
		return empty
	}
	return s
}
