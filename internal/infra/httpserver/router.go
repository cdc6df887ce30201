package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appfraud "github.com/tradesafe/docsentinel/internal/application/fraud"
	domai "github.com/tradesafe/docsentinel/internal/domain/ai"
	"github.com/tradesafe/docsentinel/internal/domain/documents"
	domain "github.com/tradesafe/docsentinel/internal/domain/fraud"
	"github.com/tradesafe/docsentinel/internal/middleware"
)

type Router struct {
	svc *appfraud.Service
}

// NewRouter mounts the analysis API consumed by the onboarding workflow.
// A nil health handler falls back to a plain liveness response.
func NewRouter(svc *appfraud.Service, allowedOrigins []string, health http.HandlerFunc) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	if len(allowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	if health == nil {
		health = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}
	}
	mux.Get("/health", health)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/documents/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/documents", r.wrap(r.handleRecord))
		rt.Get("/audit/latest", r.wrap(r.handleAuditLatest))
		rt.Get("/audit/{id}", r.wrap(r.handleAuditGet))
		rt.Get("/summary", r.wrap(r.handleSummary))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

type metadataBody struct {
	Filename        string     `json:"filename"`
	FileSizeBytes   int64      `json:"file_size_bytes"`
	UploadTimestamp *time.Time `json:"upload_timestamp"`
	SourceIP        string     `json:"source_ip"`
	UserAgent       string     `json:"user_agent"`
}

// POST /v1/documents/analyze
// Runs the full pipeline synchronously and returns the analysis result.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		DocumentType string        `json:"document_type"`
		Content      string        `json:"content"`
		SubmitterID  string        `json:"submitter_id"`
		DocumentRef  string        `json:"document_ref"`
		Metadata     *metadataBody `json:"metadata"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateSubmitterID(body.SubmitterID); err != nil {
		return err
	}

	cmd := appfraud.AnalyzeCommand{
		DocumentType: body.DocumentType,
		Content:      body.Content,
		SubmitterID:  body.SubmitterID,
		DocumentRef:  body.DocumentRef,
	}
	if body.Metadata != nil {
		md := &domain.Metadata{
			Filename:      middleware.SanitizeString(body.Metadata.Filename),
			FileSizeBytes: body.Metadata.FileSizeBytes,
			SourceIP:      body.Metadata.SourceIP,
			UserAgent:     body.Metadata.UserAgent,
		}
		if body.Metadata.UploadTimestamp != nil {
			md.UploadTimestamp = *body.Metadata.UploadTimestamp
		}
		cmd.Metadata = md
	}

	result, err := r.svc.Analyze(req.Context(), cmd)
	if err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	switch result.RecommendedAction {
	case domain.ActionReview:
		middleware.IncrementAnalysesReview()
	case domain.ActionReject:
		middleware.IncrementAnalysesRejected()
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// POST /v1/documents
// Records a submission into the corpus (onboarding glue, not analysis).
func (r *Router) handleRecord(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ID           string     `json:"id"`
		SubmitterID  string     `json:"submitter_id"`
		DocumentType string     `json:"document_type"`
		Content      string     `json:"content"`
		Filename     string     `json:"filename"`
		UploadedAt   *time.Time `json:"uploaded_at"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateSubmitterID(body.SubmitterID); err != nil {
		return err
	}

	doc := &documents.Document{
		ID:           body.ID,
		SubmitterID:  body.SubmitterID,
		DocumentType: body.DocumentType,
		Content:      body.Content,
		Filename:     middleware.SanitizeString(body.Filename),
	}
	if body.UploadedAt != nil {
		doc.UploadedAt = *body.UploadedAt
	}

	if err := r.svc.Record(req.Context(), doc); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(map[string]string{"id": doc.ID})
}

// GET /v1/audit/latest?limit=
func (r *Router) handleAuditLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	entries, err := r.svc.Audit.Latest(req.Context(), limit)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(entries)
}

// GET /v1/audit/{id}
func (r *Router) handleAuditGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return err
	}

	entry, err := r.svc.Audit.Get(req.Context(), id)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(entry)
}

// GET /v1/summary?days=
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))
	days = middleware.ValidateDays(days)

	summary, err := r.svc.Audit.Summarize(req.Context(), days)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summary)
}
