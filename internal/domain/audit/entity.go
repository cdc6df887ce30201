package audit

import "time"

// Status enum
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Entry is the append-then-update record of one analysis attempt. Created in
// processing state, updated exactly once to a terminal state.
type Entry struct {
	ID                 string    `json:"id"`
	SubmitterID        string    `json:"submitter_id"`
	DocumentType       string    `json:"document_type"`
	Status             Status    `json:"status"`
	ConfidenceScore    int       `json:"confidence_score"`
	RiskLevel          string    `json:"risk_level,omitempty"`
	SuspiciousElements string    `json:"suspicious_elements,omitempty"` // JSON array
	AnalysisResult     string    `json:"analysis_result,omitempty"`     // JSON blob
	ReviewRequired     bool      `json:"review_required"`
	FailureReason      string    `json:"failure_reason,omitempty"`
	ReportURL          string    `json:"report_url,omitempty"`
	SourceIP           string    `json:"source_ip,omitempty"`
	UserAgent          string    `json:"user_agent,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
