package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/tradesafe/docsentinel/internal/domain/documents"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Save insert/update one onboarding document
func (r *DocumentRepository) Save(ctx context.Context, d *domain.Document) error {
	const q = `
INSERT INTO onboarding_documents
 (id, submitter_id, document_type, content, filename, uploaded_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET
 document_type = EXCLUDED.document_type,
 content = EXCLUDED.content,
 filename = EXCLUDED.filename;`

	uploaded := d.UploadedAt
	if uploaded.IsZero() {
		uploaded = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		d.ID, stringOrDash(d.SubmitterID), stringOrDash(d.DocumentType),
		d.Content, d.Filename, uploaded,
	)
	return err
}

// ListByOtherSubmitters returns documents from everyone except the submitter
func (r *DocumentRepository) ListByOtherSubmitters(ctx context.Context, submitterID string) ([]*domain.Document, error) {
	const q = documentSelect + ` WHERE submitter_id <> $1 ORDER BY uploaded_at DESC;`
	return r.list(ctx, q, submitterID)
}

// ListBySubmitter returns the submitter's own documents
func (r *DocumentRepository) ListBySubmitter(ctx context.Context, submitterID string) ([]*domain.Document, error) {
	const q = documentSelect + ` WHERE submitter_id = $1 ORDER BY uploaded_at DESC;`
	return r.list(ctx, q, submitterID)
}

// CountBySubmitterBetween counts uploads inside a time window
func (r *DocumentRepository) CountBySubmitterBetween(ctx context.Context, submitterID string, from, to time.Time) (int, error) {
	const q = `
SELECT COUNT(*) FROM onboarding_documents
WHERE submitter_id = $1 AND uploaded_at > $2 AND uploaded_at <= $3;`
	var n int
	err := r.db.QueryRowContext(ctx, q, submitterID, from, to).Scan(&n)
	return n, err
}

const documentSelect = `
SELECT id, submitter_id, document_type, content, filename, uploaded_at
FROM onboarding_documents`

func (r *DocumentRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.SubmitterID, &d.DocumentType, &d.Content, &d.Filename, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
