package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// RasterConfig controls pdftoppm rasterization.
type RasterConfig struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int    // default 300
	MaxPages int    // 0 = no limit
}

// ExecRunner returns the production command runner.
func ExecRunner() Runner { return execRunner{} }

// Rasterize renders each PDF page to a PNG at the configured DPI using
// pdftoppm. Returns the per-page image paths in page order plus a cleanup
// func for the temp dir. Page images are working data only; they are removed
// after text extraction.
func Rasterize(ctx context.Context, r Runner, cfg RasterConfig, data []byte) (paths []string, cleanup func(), warnings []string, err error) {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}

	tmpDir, err := os.MkdirTemp("", "claim-raster-*")
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup = func() { _ = os.RemoveAll(tmpDir) }

	in := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return nil, cleanup, nil, err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := r.Run(ctx, cfg.Pdftoppm, "-r", fmt.Sprintf("%d", cfg.DPI), "-png", in, prefix)
	if err != nil {
		return nil, cleanup, []string{string(errb)}, fmt.Errorf("pdftoppm: %w", err)
	}

	// pdftoppm zero-pads page numbers, so a lexical sort keeps page order
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if cfg.MaxPages > 0 && len(matches) > cfg.MaxPages {
		matches = matches[:cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, cleanup, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}
	return matches, cleanup, nil, nil
}
