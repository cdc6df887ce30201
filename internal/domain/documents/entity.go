package documents

import "time"

// Document is one previously submitted onboarding document. The corpus is
// owned by the onboarding subsystem; the analysis engine only reads it.
type Document struct {
	ID           string    `json:"id"`
	SubmitterID  string    `json:"submitter_id"`
	DocumentType string    `json:"document_type"`
	Content      string    `json:"content"`
	Filename     string    `json:"filename,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
