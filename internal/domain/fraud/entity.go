package fraud

import (
	"time"
)

// AnalysisID tipe untuk satu analysis run
type AnalysisID string

// DocumentType enum
type DocumentType string

const (
	DocInsurancePolicy    DocumentType = "insurance_policy"
	DocBusinessLicense    DocumentType = "business_license"
	DocCertification      DocumentType = "certification"
	DocProofOfWork        DocumentType = "proof_of_work"
	DocFinancialStatement DocumentType = "financial_statement"
	DocOther              DocumentType = "other"
)

// ValidDocumentType reports whether t is a recognized document type.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocInsurancePolicy, DocBusinessLicense, DocCertification,
		DocProofOfWork, DocFinancialStatement, DocOther:
		return true
	}
	return false
}

// Severity enum
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Category enum untuk risk factor
type Category string

const (
	CategoryContent     Category = "content_analysis"
	CategoryPlagiarism  Category = "plagiarism"
	CategoryConsistency Category = "consistency"
	CategoryMetadata    Category = "metadata"
	CategorySystemError Category = "system_error"
)

// Action enum
type Action string

const (
	ActionApprove Action = "approve"
	ActionReview  Action = "review"
	ActionReject  Action = "reject"
)

// Metadata upload info yang menyertai submission (optional)
type Metadata struct {
	Filename        string    `json:"filename,omitempty"`
	FileSizeBytes   int64     `json:"file_size_bytes,omitempty"`
	UploadTimestamp time.Time `json:"upload_timestamp,omitempty"`
	SourceIP        string    `json:"source_ip,omitempty"`
	UserAgent       string    `json:"user_agent,omitempty"`
}

// Submission is the input to one analysis. Content is extracted text owned
// by the caller and must not be mutated while the analysis runs.
type Submission struct {
	DocumentType DocumentType `json:"document_type"`
	Content      string       `json:"content"`
	Metadata     *Metadata    `json:"metadata,omitempty"`
	SubmitterID  string       `json:"submitter_id"`
	DocumentRef  string       `json:"document_ref,omitempty"` // opaque, never dereferenced here
}

// RiskFactor is one flagged concern. Immutable value type.
type RiskFactor struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence"`
}

// AnalysisDetails one free-text summary per analyzer
type AnalysisDetails struct {
	DocumentType     string `json:"document_type"`
	ContentAnalysis  string `json:"content_analysis"`
	PlagiarismCheck  string `json:"plagiarism_check"`
	ConsistencyCheck string `json:"consistency_check"`
	MetadataAnalysis string `json:"metadata_analysis"`
}

// Result of one submission. Produced once, immutable after creation.
type Result struct {
	ID                 AnalysisID      `json:"id"`
	IsAuthentic        bool            `json:"is_authentic"`
	ConfidenceScore    int             `json:"confidence_score"`
	SuspiciousElements []string        `json:"suspicious_elements"`
	RecommendedAction  Action          `json:"recommended_action"`
	AnalysisDetails    AnalysisDetails `json:"analysis_details"`
	RiskFactors        []RiskFactor    `json:"risk_factors"`
}
