package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KHCFirm/pdf-parser/internal/claim"
	"github.com/KHCFirm/pdf-parser/internal/extract"
)

// Fetcher downloads a document by URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (extract.Document, error)
}

// Extractor runs the strategy ladder.
type Extractor interface {
	Run(ctx context.Context, doc extract.Document) (extract.Result, error)
}

// Processor coordinates fetch, extraction and field mapping for one request.
// It holds no state across requests; a cancelled request is simply retried
// from scratch by the caller.
type Processor struct {
	Logger   *slog.Logger
	Fetcher  Fetcher
	Pipeline Extractor
	Rules    []claim.FieldRule
	Aliases  map[string]string
}

func NewProcessor(logger *slog.Logger, fetcher Fetcher, pipe Extractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:   logger,
		Fetcher:  fetcher,
		Pipeline: pipe,
		Rules:    claim.Rules,
		Aliases:  claim.Aliases,
	}
}

// ProcessURL fetches the referenced document and returns the canonical field
// map. Every declared field is present in the result; a field that could not
// be located maps to claim.NotFound. On failure the error carries its kind
// and no partial field data is returned.
func (p *Processor) ProcessURL(ctx context.Context, rawURL string) (map[string]string, error) {
	rid := uuid.New().String()
	start := time.Now()
	log := p.Logger.With("req_id", rid)

	doc, err := p.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		log.Warn("process.fetch.failed", "url", rawURL, "error", err)
		return nil, err
	}

	res, err := p.Pipeline.Run(ctx, doc)
	if err != nil {
		log.Warn("process.extract.failed", "url", rawURL, "error", err)
		return nil, err
	}

	var fields map[string]string
	if len(res.Fields) > 0 {
		// structured strategy already produced named fields; reconcile its
		// free-form key choices with the canonical vocabulary
		std := claim.Standardize(res.Fields, p.Aliases)
		fields = claim.Conform(std)
	} else {
		text := extract.Normalize(res.Text())
		fields = claim.MapFields(text, p.Rules)
	}

	found := 0
	for _, v := range fields {
		if v != claim.NotFound {
			found++
		}
	}
	log.Info("process.ok",
		"method", res.Method,
		"fields_found", found,
		"fields_total", len(fields),
		"warnings", len(res.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return fields, nil
}
