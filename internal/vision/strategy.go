package vision

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KHCFirm/pdf-parser/internal/common"
	"github.com/KHCFirm/pdf-parser/internal/extract"
	"github.com/KHCFirm/pdf-parser/internal/ocr"
)

// Strategy rasterizes the document and sends each page to the remote vision
// OCR service. A page-scoped service error degrades to empty text for that
// page; the strategy only fails when rasterization fails or every page errors.
type Strategy struct {
	client  *Client
	raster  ocr.RasterConfig
	runner  ocr.Runner
	workers int
	logger  *slog.Logger
}

func NewStrategy(client *Client, raster ocr.RasterConfig, workers int, logger *slog.Logger) *Strategy {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Strategy{
		client:  client,
		raster:  raster,
		runner:  ocr.ExecRunner(),
		workers: workers,
		logger:  logger,
	}
}

// WithRunner swaps the rasterization command runner for tests.
func (s *Strategy) WithRunner(r ocr.Runner) *Strategy {
	s.runner = r
	return s
}

func (s *Strategy) Name() string { return "vision-ocr" }

func (s *Strategy) Extract(ctx context.Context, doc extract.Document) (extract.Result, error) {
	images, cleanup, warns, err := ocr.Rasterize(ctx, s.runner, s.raster, doc.Data)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return extract.Result{}, common.NewAppError(common.KindExtractionFailed, "rasterize", err)
	}

	pages := make([]string, len(images))
	pageErrs := make([]string, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			data, rerr := os.ReadFile(img)
			if rerr != nil {
				pageErrs[i] = fmt.Sprintf("page %d: %v", i+1, rerr)
				return nil
			}
			txt, aerr := s.client.Annotate(gctx, data)
			if aerr != nil {
				s.logger.Warn("vision.page.failed", "page", i+1, "error", aerr)
				pageErrs[i] = fmt.Sprintf("page %d: %v", i+1, aerr)
				return nil
			}
			pages[i] = txt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return extract.Result{}, common.NewAppError(common.KindExtractionFailed, "vision pages", err)
	}

	failed := 0
	for _, e := range pageErrs {
		if e != "" {
			warns = append(warns, e)
			failed++
		}
	}
	if failed == len(images) {
		return extract.Result{}, common.NewAppError(common.KindExtractionFailed,
			"vision ocr failed for every page: "+strings.Join(warns, "; "), nil)
	}

	return extract.Result{Pages: pages, Method: s.Name(), Warnings: warns}, nil
}
