package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesafe/docsentinel/internal/application"
	appfraud "github.com/tradesafe/docsentinel/internal/application/fraud"
	"github.com/tradesafe/docsentinel/internal/domain/audit"
	"github.com/tradesafe/docsentinel/internal/domain/documents"
	domain "github.com/tradesafe/docsentinel/internal/domain/fraud"
)

type stubAudit struct {
	entries map[string]*audit.Entry
}

func newStubAudit() *stubAudit {
	return &stubAudit{entries: make(map[string]*audit.Entry)}
}

func (s *stubAudit) Create(_ context.Context, e *audit.Entry) error {
	cp := *e
	s.entries[e.ID] = &cp
	return nil
}

func (s *stubAudit) Complete(_ context.Context, e *audit.Entry) error {
	cp := *e
	s.entries[e.ID] = &cp
	return nil
}

func (s *stubAudit) MarkFailed(_ context.Context, id, reason string) error {
	if e, ok := s.entries[id]; ok {
		e.Status = audit.StatusFailed
		e.FailureReason = reason
	}
	return nil
}

func (s *stubAudit) Get(_ context.Context, id string) (*audit.Entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return e, nil
}

func (s *stubAudit) Latest(_ context.Context, limit int) ([]*audit.Entry, error) {
	out := make([]*audit.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubAudit) Summarize(context.Context, int) (audit.Summary, error) {
	return audit.Summary{Total: len(s.entries)}, nil
}

func (s *stubAudit) MarkStaleFailed(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type stubDocs struct {
	saved []*documents.Document
}

func (s *stubDocs) Save(_ context.Context, d *documents.Document) error {
	s.saved = append(s.saved, d)
	return nil
}

func (s *stubDocs) ListByOtherSubmitters(context.Context, string) ([]*documents.Document, error) {
	return nil, nil
}

func (s *stubDocs) ListBySubmitter(context.Context, string) ([]*documents.Document, error) {
	return nil, nil
}

func (s *stubDocs) CountBySubmitterBetween(context.Context, string, time.Time, time.Time) (int, error) {
	return 0, nil
}

type stubGenerator struct{ reply string }

func (g stubGenerator) Analyze(context.Context, string, string) (string, error) {
	return g.reply, nil
}

func newTestHandler(aud *stubAudit, docs *stubDocs) http.Handler {
	svc := &appfraud.Service{
		Audit:     aud,
		Documents: docs,
		Generator: stubGenerator{reply: "Document appears well formed and authentic."},
		Clock:     application.SystemClock{},
	}
	return NewRouter(svc, nil, nil)
}

func TestAnalyzeEndpoint(t *testing.T) {
	aud := newStubAudit()
	h := newTestHandler(aud, &stubDocs{})

	body := `{"document_type":"certification","content":"Certification of competency.","submitter_id":"sub-1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.IsAuthentic)
	assert.Equal(t, domain.ActionApprove, res.RecommendedAction)
	assert.NotEmpty(t, res.ID)

	// terminal audit row exists for the returned id
	entry, ok := aud.entries[string(res.ID)]
	require.True(t, ok)
	assert.Equal(t, audit.StatusCompleted, entry.Status)
}

func TestAnalyzeEndpointRejectsBadSubmitter(t *testing.T) {
	h := newTestHandler(newStubAudit(), &stubDocs{})

	body := `{"document_type":"certification","content":"text","submitter_id":"bad id!"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointRejectsUnknownType(t *testing.T) {
	h := newTestHandler(newStubAudit(), &stubDocs{})

	body := `{"document_type":"tax_return","content":"text","submitter_id":"sub-1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordEndpoint(t *testing.T) {
	docs := &stubDocs{}
	h := newTestHandler(newStubAudit(), docs)

	body := `{"submitter_id":"sub-1","document_type":"certification","content":"text","filename":"cert.pdf"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, docs.saved, 1)
	assert.NotEmpty(t, docs.saved[0].ID)
	assert.Equal(t, "cert.pdf", docs.saved[0].Filename)
}

func TestAuditGetNotFound(t *testing.T) {
	h := newTestHandler(newStubAudit(), &stubDocs{})

	req := httptest.NewRequest(http.MethodGet, "/v1/audit/a3bb189e-8bf9-3888-9912-ace4e6543002", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuditGetRejectsMalformedID(t *testing.T) {
	h := newTestHandler(newStubAudit(), &stubDocs{})

	req := httptest.NewRequest(http.MethodGet, "/v1/audit/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(newStubAudit(), &stubDocs{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSummaryEndpoint(t *testing.T) {
	h := newTestHandler(newStubAudit(), &stubDocs{})

	req := httptest.NewRequest(http.MethodGet, "/v1/summary?days=30", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var sum audit.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 0, sum.Total)
}
