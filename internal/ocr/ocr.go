package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KHCFirm/pdf-parser/internal/common"
	"github.com/KHCFirm/pdf-parser/internal/extract"
)

// Config for local rasterize-and-OCR extraction.
type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI, default 300
	PSM           int    // page segmentation mode; 6 suits a uniform form block
	MaxPages      int    // 0 = no limit

	PageTimeout time.Duration // per-page tesseract budget, default 30s
	Workers     int           // concurrent page workers, default NumCPU
}

// Extractor rasterizes the document and runs tesseract per page. Pages are
// OCRed concurrently and reassembled in page order. A page that fails or
// times out contributes empty text; only rasterization itself is fatal.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 30 * time.Second
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner; tests use this to stub binaries.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

func (e *Extractor) Name() string { return "local-ocr" }

func (e *Extractor) Extract(ctx context.Context, doc extract.Document) (extract.Result, error) {
	raster := RasterConfig{Pdftoppm: e.cfg.Pdftoppm, DPI: e.cfg.DPI, MaxPages: e.cfg.MaxPages}
	images, cleanup, warns, err := Rasterize(ctx, e.runner, raster, doc.Data)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return extract.Result{}, common.NewAppError(common.KindExtractionFailed, "rasterize", err)
	}

	pages := make([]string, len(images))
	pageWarns := make([]string, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, e.cfg.PageTimeout)
			defer cancel()

			txt, terr := e.tesseract(pctx, img)
			if terr != nil {
				// page-local failure: contribute empty text, keep going
				e.logger.Warn("ocr.page.failed", "page", i+1, "error", terr)
				pageWarns[i] = fmt.Sprintf("page %d: %v", i+1, terr)
				return nil
			}
			pages[i] = txt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return extract.Result{}, common.NewAppError(common.KindExtractionFailed, "ocr pages", err)
	}

	for _, w := range pageWarns {
		if w != "" {
			warns = append(warns, w)
		}
	}

	e.logger.Debug("ocr.extracted", "pages", len(pages), "warnings", len(warns))
	return extract.Result{Pages: pages, Method: e.Name(), Warnings: warns}, nil
}

func (e *Extractor) tesseract(ctx context.Context, imgPath string) (string, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}

	// tesseract <img> stdout -l <lang> --psm <n>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return string(out), nil
}
