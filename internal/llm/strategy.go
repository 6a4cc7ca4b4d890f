package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/KHCFirm/pdf-parser/internal/common"
	"github.com/KHCFirm/pdf-parser/internal/extract"
	"github.com/KHCFirm/pdf-parser/internal/ocr"
)

// Strategy is the most expensive, least deterministic rung of the ladder:
// page images go straight to a generative vision model which both OCRs and
// maps fields in one pass. Its Result carries Fields, not text.
type Strategy struct {
	client *Client
	raster ocr.RasterConfig
	runner ocr.Runner
	logger *slog.Logger
}

func NewStrategy(client *Client, raster ocr.RasterConfig, logger *slog.Logger) *Strategy {
	if raster.MaxPages <= 0 {
		// claim forms are one page; cap what we ship to the model
		raster.MaxPages = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Strategy{
		client: client,
		raster: raster,
		runner: ocr.ExecRunner(),
		logger: logger,
	}
}

// WithRunner swaps the rasterization command runner for tests.
func (s *Strategy) WithRunner(r ocr.Runner) *Strategy {
	s.runner = r
	return s
}

func (s *Strategy) Name() string { return "llm-structured" }

func (s *Strategy) Extract(ctx context.Context, doc extract.Document) (extract.Result, error) {
	paths, cleanup, warns, err := ocr.Rasterize(ctx, s.runner, s.raster, doc.Data)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return extract.Result{}, common.NewAppError(common.KindExtractionFailed, "rasterize", err)
	}

	images := make([][]byte, 0, len(paths))
	for i, p := range paths {
		data, rerr := os.ReadFile(p)
		if rerr != nil {
			return extract.Result{}, common.NewAppError(common.KindExtractionFailed,
				fmt.Sprintf("read page image %d", i+1), rerr)
		}
		images = append(images, data)
	}

	fields, err := s.client.ExtractFields(ctx, images)
	if err != nil {
		// malformed model output counts as this strategy's failure;
		// the pipeline records it and falls through
		return extract.Result{}, common.NewAppError(common.KindExtractionFailed, "structured extraction", err)
	}

	return extract.Result{Fields: fields, Method: s.Name(), Warnings: warns}, nil
}
