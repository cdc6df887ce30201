package fraud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tradesafe/docsentinel/internal/application"
	"github.com/tradesafe/docsentinel/internal/domain/ai"
	"github.com/tradesafe/docsentinel/internal/domain/audit"
	"github.com/tradesafe/docsentinel/internal/domain/documents"
	domain "github.com/tradesafe/docsentinel/internal/domain/fraud"
)

const defaultAnalyzerTimeout = 30 * time.Second

// ReportStore port untuk menyimpan serialized analysis reports.
type ReportStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// Service implements the analysis use-cases. Safe for concurrent use.
// Generator and Reports may be nil when those capabilities are unconfigured;
// the pipeline degrades instead of failing.
type Service struct {
	Audit     audit.Repository
	Documents documents.Repository
	Generator ai.Client
	Reports   ReportStore
	Clock     application.Clock

	// AnalyzerTimeout bounds each analyzer call so a stalled generator
	// cannot stall the whole submission. Zero means the default.
	AnalyzerTimeout time.Duration
}

// AnalyzeCommand carries one submission into the pipeline.
type AnalyzeCommand struct {
	DocumentType string
	Content      string
	SubmitterID  string
	DocumentRef  string
	Metadata     *domain.Metadata
}

// analysis is one analyzer's output: a free-text summary plus risk factors.
type analysis struct {
	summary string
	risks   []domain.RiskFactor
}

// Analyze runs the full pipeline: validate, open the audit row, fan out the
// four analyzers, aggregate, terminal audit write. A successfully dispatched
// submission always yields a terminal Result; orchestration faults map to the
// conservative fallback rather than an error.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (domain.Result, error) {
	docType := domain.DocumentType(cmd.DocumentType)
	if strings.TrimSpace(cmd.Content) == "" {
		return domain.Result{}, fmt.Errorf("%w: content is empty", domain.ErrInvalidInput)
	}
	if !domain.ValidDocumentType(docType) {
		return domain.Result{}, fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidInput, cmd.DocumentType)
	}

	sub := domain.Submission{
		DocumentType: docType,
		Content:      cmd.Content,
		Metadata:     cmd.Metadata,
		SubmitterID:  cmd.SubmitterID,
		DocumentRef:  cmd.DocumentRef,
	}

	now := s.Clock.Now()
	id := uuid.New().String()

	entry := &audit.Entry{
		ID:           id,
		SubmitterID:  sub.SubmitterID,
		DocumentType: string(sub.DocumentType),
		Status:       audit.StatusProcessing,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if md := sub.Metadata; md != nil {
		entry.SourceIP = md.SourceIP
		entry.UserAgent = md.UserAgent
	}
	if err := s.Audit.Create(ctx, entry); err != nil {
		// Orchestration fault before any analyzer ran. No processing row
		// exists, so the conservative result is all we can hand back.
		return conservativeResult(domain.AnalysisID(id), sub.DocumentType, err), nil
	}

	outcomes := s.runAnalyzers(ctx, sub)

	if err := ctx.Err(); err != nil {
		// Caller abandoned the submission; the row must not stay processing.
		_ = s.Audit.MarkFailed(context.Background(), id, "analysis canceled: "+err.Error())
		return domain.Result{}, err
	}

	factors := make([]domain.RiskFactor, 0,
		len(outcomes[0].risks)+len(outcomes[1].risks)+len(outcomes[2].risks)+len(outcomes[3].risks))
	for _, o := range outcomes {
		factors = append(factors, o.risks...)
	}

	result := domain.BuildResult(domain.AnalysisID(id), factors, domain.AnalysisDetails{
		DocumentType:     string(sub.DocumentType),
		ContentAnalysis:  outcomes[0].summary,
		PlagiarismCheck:  outcomes[1].summary,
		ConsistencyCheck: outcomes[2].summary,
		MetadataAnalysis: outcomes[3].summary,
	})

	reportURL := s.uploadReport(ctx, sub, result)

	entry.Status = audit.StatusCompleted
	entry.ConfidenceScore = result.ConfidenceScore
	entry.RiskLevel = string(domain.RiskLevelFor(result.ConfidenceScore))
	entry.SuspiciousElements = marshalJSON(result.SuspiciousElements)
	entry.AnalysisResult = marshalJSON(result)
	entry.ReviewRequired = result.RecommendedAction == domain.ActionReview
	entry.ReportURL = reportURL
	entry.UpdatedAt = s.Clock.Now()

	if err := s.Audit.Complete(ctx, entry); err != nil {
		// Terminal write failed; flip the row to failed so it is never
		// left processing, then fall back conservatively.
		_ = s.Audit.MarkFailed(context.Background(), id, "terminal audit write failed: "+err.Error())
		return conservativeResult(domain.AnalysisID(id), sub.DocumentType, err), nil
	}

	return result, nil
}

// Record appends a submission to the corpus. Onboarding glue; Analyze never
// writes the corpus, which keeps re-runs deterministic.
func (s *Service) Record(ctx context.Context, doc *documents.Document) error {
	if strings.TrimSpace(doc.SubmitterID) == "" {
		return fmt.Errorf("%w: submitter id is required", domain.ErrInvalidInput)
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = s.Clock.Now()
	}
	return s.Documents.Save(ctx, doc)
}

// runAnalyzers fans out the four analyzers and joins them all. Order in the
// returned array: content, duplicate, consistency, metadata. An analyzer
// failure degrades to a local fallback factor; it never cancels siblings.
func (s *Service) runAnalyzers(ctx context.Context, sub domain.Submission) [4]analysis {
	tasks := []struct {
		idx      int
		category domain.Category
		run      func(context.Context, domain.Submission) (analysis, error)
	}{
		{0, domain.CategoryContent, s.analyzeContent},
		{1, domain.CategoryPlagiarism, s.checkDuplicates},
		{2, domain.CategoryConsistency, s.checkConsistency},
		{3, domain.CategoryMetadata, s.analyzeMetadata},
	}

	var out [4]analysis
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(idx int, category domain.Category, run func(context.Context, domain.Submission) (analysis, error)) {
			defer wg.Done()
			actx, cancel := context.WithTimeout(ctx, s.analyzerTimeout())
			defer cancel()
			res, err := run(actx, sub)
			if err != nil {
				res = degraded(category, err)
			}
			out[idx] = res
		}(t.idx, t.category, t.run)
	}
	wg.Wait()
	return out
}

func (s *Service) analyzerTimeout() time.Duration {
	if s.AnalyzerTimeout > 0 {
		return s.AnalyzerTimeout
	}
	return defaultAnalyzerTimeout
}

// degraded is the local fallback for one failed analyzer: a single medium
// factor in that analyzer's category, so the other three results survive.
func degraded(category domain.Category, err error) analysis {
	return analysis{
		summary: "Analysis unavailable - manual review required",
		risks: []domain.RiskFactor{{
			Category:    category,
			Severity:    domain.SeverityMedium,
			Description: "Automated check unavailable - manual review required",
			Evidence:    err.Error(),
		}},
	}
}

// conservativeResult is the global fallback for orchestration faults.
func conservativeResult(id domain.AnalysisID, docType domain.DocumentType, cause error) domain.Result {
	const failed = "Analysis failed"
	return domain.Result{
		ID:                 id,
		IsAuthentic:        false,
		ConfidenceScore:    0,
		SuspiciousElements: []string{"Analysis failed - manual review required"},
		RecommendedAction:  domain.ActionReview,
		AnalysisDetails: domain.AnalysisDetails{
			DocumentType:     string(docType),
			ContentAnalysis:  failed,
			PlagiarismCheck:  failed,
			ConsistencyCheck: failed,
			MetadataAnalysis: failed,
		},
		RiskFactors: []domain.RiskFactor{{
			Category:    domain.CategorySystemError,
			Severity:    domain.SeverityHigh,
			Description: "Automated analysis failed",
			Evidence:    cause.Error(),
		}},
	}
}

// uploadReport stores the serialized result as an artifact, best effort.
func (s *Service) uploadReport(ctx context.Context, sub domain.Submission, result domain.Result) string {
	if s.Reports == nil {
		return ""
	}
	body, err := json.Marshal(result)
	if err != nil {
		return ""
	}
	key := fmt.Sprintf("%s/%s/%s.json", sub.SubmitterID, sub.DocumentType, result.ID)
	url, err := s.Reports.Put(ctx, key, body)
	if err != nil {
		return ""
	}
	return url
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
