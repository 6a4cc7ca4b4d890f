package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/KHCFirm/pdf-parser/internal/common"
)

// PDFText reads the embedded text layer directly from the PDF structure.
// Cheapest strategy; yields empty text for pure-image scans, which signals the
// pipeline to fall through to OCR.
type PDFText struct {
	logger *slog.Logger
}

func NewPDFText(logger *slog.Logger) *PDFText {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFText{logger: logger}
}

func (s *PDFText) Name() string { return "pdf-text" }

func (s *PDFText) Extract(ctx context.Context, doc Document) (res Result, err error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !looksLikePDF(doc) {
		// not a PDF; nothing embedded to read, let OCR have a go
		return Result{Method: s.Name()}, nil
	}

	// reject corrupt documents up front and get an authoritative page count
	conf := model.NewDefaultConfiguration()
	pctx, verr := api.ReadValidateAndOptimize(bytes.NewReader(doc.Data), conf)
	if verr != nil {
		return Result{}, common.NewAppError(common.KindExtractionFailed, "pdf validation failed", verr)
	}

	// ledongthuc panics on some malformed xref tables that survive validation
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = common.NewAppError(common.KindExtractionFailed, fmt.Sprintf("pdf reader panic: %v", r), nil)
		}
	}()

	reader, rerr := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if rerr != nil {
		return Result{}, common.NewAppError(common.KindExtractionFailed, "open pdf", rerr)
	}

	n := reader.NumPage()
	if pctx.PageCount > 0 && n > pctx.PageCount {
		n = pctx.PageCount
	}

	pages := make([]string, 0, n)
	var warnings []string
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		txt, terr := page.GetPlainText(nil)
		if terr != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, terr))
			pages = append(pages, "")
			continue
		}
		pages = append(pages, txt)
	}

	s.logger.Debug("pdftext.extracted",
		"pages", len(pages),
		"bytes", textLen(pages),
		"warnings", len(warnings),
	)
	return Result{Pages: pages, Method: s.Name(), Warnings: warnings}, nil
}

func looksLikePDF(doc Document) bool {
	if strings.Contains(strings.ToLower(doc.ContentType), "pdf") {
		return true
	}
	return bytes.HasPrefix(doc.Data, []byte("%PDF-"))
}

func textLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(p)
	}
	return n
}
