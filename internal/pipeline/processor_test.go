package pipeline

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KHCFirm/pdf-parser/internal/claim"
	"github.com/KHCFirm/pdf-parser/internal/common"
	"github.com/KHCFirm/pdf-parser/internal/extract"
)

type stubFetcher struct {
	doc   extract.Document
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (extract.Document, error) {
	s.calls++
	return s.doc, s.err
}

type stubExtractor struct {
	res   extract.Result
	err   error
	calls int
}

func (s *stubExtractor) Run(_ context.Context, _ extract.Document) (extract.Result, error) {
	s.calls++
	return s.res, s.err
}

func TestProcessURLTextPath(t *testing.T) {
	f := &stubFetcher{doc: extract.Document{Data: []byte("%PDF-")}}
	e := &stubExtractor{res: extract.Result{
		Pages:  []string{"Patient's Name: John Smith DOB: 01/02/1980"},
		Method: "pdf-text",
	}}
	p := NewProcessor(nil, f, e)

	fields, err := p.ProcessURL(context.Background(), "https://example.com/claim.pdf")
	require.NoError(t, err)

	require.Len(t, fields, len(claim.Rules), "total coverage regardless of matches")
	assert.Equal(t, "JOHN SMITH", fields[claim.FieldPatientsName])
	assert.Equal(t, "01/02/1980", fields[claim.FieldPatientsDOB])
	assert.Equal(t, claim.NotFound, fields[claim.FieldCharges])
}

func TestProcessURLStructuredPath(t *testing.T) {
	f := &stubFetcher{doc: extract.Document{Data: []byte("%PDF-")}}
	e := &stubExtractor{res: extract.Result{
		Fields: map[string]string{
			"Patient Name": "JANE DOE",
			"weird_key":    "dropped",
		},
		Method: "llm-structured",
	}}
	p := NewProcessor(nil, f, e)

	fields, err := p.ProcessURL(context.Background(), "https://example.com/claim.pdf")
	require.NoError(t, err)

	require.Len(t, fields, len(claim.Rules))
	assert.Equal(t, "JANE DOE", fields[claim.FieldPatientsName])
	assert.Equal(t, claim.NotFound, fields[claim.FieldPatientsDOB], "missing vocabulary fields are backfilled")
	assert.NotContains(t, fields, "weird_key")
}

func TestProcessURLFetchFailureSkipsExtraction(t *testing.T) {
	f := &stubFetcher{err: &common.AppError{
		Kind:    common.KindFetchFailed,
		Message: "origin returned non-2xx status",
		Status:  http.StatusNotFound,
	}}
	e := &stubExtractor{}
	p := NewProcessor(nil, f, e)

	_, err := p.ProcessURL(context.Background(), "https://example.com/missing.pdf")
	require.Error(t, err)

	var ae *common.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, common.KindFetchFailed, ae.Kind)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 0, e.calls, "extraction must never run after a fetch failure")
}

func TestProcessURLExtractionFailurePropagates(t *testing.T) {
	f := &stubFetcher{doc: extract.Document{Data: []byte("%PDF-")}}
	e := &stubExtractor{err: &extract.PipelineError{Attempts: []extract.Attempt{
		{Strategy: "pdf-text", Reason: "empty result"},
		{Strategy: "local-ocr", Reason: "tesseract missing"},
	}}}
	p := NewProcessor(nil, f, e)

	_, err := p.ProcessURL(context.Background(), "https://example.com/claim.pdf")
	require.Error(t, err)
	assert.Equal(t, common.KindNoTextExtracted, common.KindOf(err))
}
