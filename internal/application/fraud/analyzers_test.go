package fraud

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesafe/docsentinel/internal/domain/documents"
	domain "github.com/tradesafe/docsentinel/internal/domain/fraud"
)

func TestAnalyzeMetadataNoMetadata(t *testing.T) {
	svc := newService(&fakeAudit{}, &fakeDocs{}, fakeGenerator{})

	out, err := svc.analyzeMetadata(context.Background(), domain.Submission{SubmitterID: "sub-1"})
	require.NoError(t, err)
	assert.Empty(t, out.risks)
	assert.Equal(t, "Metadata analysis completed", out.summary)
}

func TestAnalyzeMetadataSmallFile(t *testing.T) {
	svc := newService(&fakeAudit{}, &fakeDocs{}, fakeGenerator{})

	out, err := svc.analyzeMetadata(context.Background(), domain.Submission{
		SubmitterID: "sub-1",
		Metadata:    &domain.Metadata{Filename: "policy.pdf", FileSizeBytes: 500},
	})
	require.NoError(t, err)
	require.Len(t, out.risks, 1)
	assert.Equal(t, domain.SeverityMedium, out.risks[0].Severity)
	assert.Equal(t, "Unusually small file size for document type", out.risks[0].Description)
	assert.Contains(t, out.risks[0].Evidence, "500 bytes")
}

func TestAnalyzeMetadataSuspiciousFilename(t *testing.T) {
	svc := newService(&fakeAudit{}, &fakeDocs{}, fakeGenerator{})

	out, err := svc.analyzeMetadata(context.Background(), domain.Submission{
		SubmitterID: "sub-1",
		Metadata:    &domain.Metadata{Filename: "invoice_TEMPLATE.pdf", FileSizeBytes: 50000},
	})
	require.NoError(t, err)
	require.Len(t, out.risks, 1)
	assert.Equal(t, domain.SeverityHigh, out.risks[0].Severity)
	assert.Equal(t, "Suspicious filename pattern", out.risks[0].Description)
}

func TestAnalyzeMetadataVelocity(t *testing.T) {
	docs := &fakeDocs{count: 6}
	svc := newService(&fakeAudit{}, docs, fakeGenerator{})

	uploaded := fixedNow
	out, err := svc.analyzeMetadata(context.Background(), domain.Submission{
		SubmitterID: "sub-1",
		Metadata:    &domain.Metadata{Filename: "policy.pdf", FileSizeBytes: 50000, UploadTimestamp: uploaded},
	})
	require.NoError(t, err)

	// window is the five minutes up to the upload
	assert.Equal(t, uploaded.Add(-5*time.Minute), docs.countFrom)
	assert.Equal(t, uploaded, docs.countTo)

	require.Len(t, out.risks, 1)
	assert.Equal(t, domain.SeverityHigh, out.risks[0].Severity)
	assert.Equal(t, "Unusually rapid document submissions", out.risks[0].Description)
	assert.Contains(t, out.risks[0].Evidence, "6 documents")
}

func TestAnalyzeMetadataVelocityAtLimit(t *testing.T) {
	docs := &fakeDocs{count: 5}
	svc := newService(&fakeAudit{}, docs, fakeGenerator{})

	out, err := svc.analyzeMetadata(context.Background(), domain.Submission{
		SubmitterID: "sub-1",
		Metadata:    &domain.Metadata{Filename: "policy.pdf", FileSizeBytes: 50000, UploadTimestamp: fixedNow},
	})
	require.NoError(t, err)
	assert.Empty(t, out.risks)
}

func TestCheckDuplicatesFindsNearDuplicate(t *testing.T) {
	shared := "public liability insurance policy issued to acme plumbing covering works up to two million dollars"
	docs := &fakeDocs{others: []*documents.Document{
		{ID: "d1", SubmitterID: "sub-2", Content: "entirely different renovation quote for a kitchen"},
		{ID: "d2", SubmitterID: "sub-3", Content: shared},
		{ID: "d3", SubmitterID: "sub-4", Content: shared},
	}}
	svc := newService(&fakeAudit{}, docs, fakeGenerator{})

	out, err := svc.checkDuplicates(context.Background(), domain.Submission{
		SubmitterID: "sub-1",
		Content:     shared,
	})
	require.NoError(t, err)

	// first match wins; the second identical document adds nothing
	require.Len(t, out.risks, 1)
	assert.Equal(t, domain.SeverityHigh, out.risks[0].Severity)
	assert.Equal(t, "Document appears to be duplicate of another submission", out.risks[0].Description)
	assert.Contains(t, out.risks[0].Evidence, "sub-3")
	assert.Equal(t, "Plagiarism check found 1 potential issues", out.summary)
}

func TestCheckDuplicatesDistinctContent(t *testing.T) {
	docs := &fakeDocs{others: []*documents.Document{
		{ID: "d1", SubmitterID: "sub-2", Content: "entirely different renovation quote for a kitchen"},
	}}
	svc := newService(&fakeAudit{}, docs, fakeGenerator{})

	out, err := svc.checkDuplicates(context.Background(), domain.Submission{
		SubmitterID: "sub-1",
		Content:     "certificate of currency for electrical contracting works",
	})
	require.NoError(t, err)
	assert.Empty(t, out.risks)
	assert.Equal(t, "Plagiarism check found 0 potential issues", out.summary)
}

func TestCheckDuplicatesSkipsEmptyCorpusEntries(t *testing.T) {
	docs := &fakeDocs{others: []*documents.Document{
		{ID: "d1", SubmitterID: "sub-2", Content: ""},
	}}
	svc := newService(&fakeAudit{}, docs, fakeGenerator{})

	out, err := svc.checkDuplicates(context.Background(), domain.Submission{
		SubmitterID: "sub-1",
		Content:     "certificate of currency for electrical contracting works",
	})
	require.NoError(t, err)
	assert.Empty(t, out.risks)
}

func TestCheckConsistencyEmitsNoFactors(t *testing.T) {
	docs := &fakeDocs{own: []*documents.Document{
		{ID: "d1", SubmitterID: "sub-1", Content: "prior"},
		{ID: "d2", SubmitterID: "sub-1", Content: "prior"},
	}}
	svc := newService(&fakeAudit{}, docs, fakeGenerator{})

	out, err := svc.checkConsistency(context.Background(), domain.Submission{
		SubmitterID: "sub-1",
		Content:     "Business Name: Acme Plumbing\nABN: 51 824 753 556",
	})
	require.NoError(t, err)
	assert.Empty(t, out.risks)
	assert.Equal(t, "Consistency check completed with 0 concerns (2 identity fields extracted, 2 prior documents on file)", out.summary)
}
