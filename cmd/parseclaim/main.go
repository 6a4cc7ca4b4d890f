package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/KHCFirm/pdf-parser/internal/common"
	"github.com/KHCFirm/pdf-parser/internal/extract"
	"github.com/KHCFirm/pdf-parser/internal/fetch"
	"github.com/KHCFirm/pdf-parser/internal/llm"
	"github.com/KHCFirm/pdf-parser/internal/ocr"
	"github.com/KHCFirm/pdf-parser/internal/pipeline"
	"github.com/KHCFirm/pdf-parser/internal/vision"
)

// One-shot runner: parseclaim <document-url> prints the field map as JSON.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "parseclaim <document-url>")
		os.Exit(2)
	}
	rawURL := os.Args[1]

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fetcher := fetch.NewFetcher(fetch.Config{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
		Referer:   cfg.Fetch.Referer,
	}, nil, logger)

	raster := ocr.RasterConfig{Pdftoppm: cfg.OCR.Pdftoppm, DPI: cfg.OCR.DPI, MaxPages: cfg.OCR.MaxPages}
	strategies := []extract.Strategy{
		extract.NewPDFText(logger),
		ocr.NewExtractor(ocr.Config{
			Pdftoppm:      cfg.OCR.Pdftoppm,
			Tesseract:     cfg.OCR.Tesseract,
			TesseractLang: cfg.OCR.TesseractLang,
			DPI:           cfg.OCR.DPI,
			PSM:           cfg.OCR.PSM,
			MaxPages:      cfg.OCR.MaxPages,
			PageTimeout:   cfg.OCR.PageTimeout,
			Workers:       cfg.OCR.Workers,
		}, logger),
	}
	if cfg.Vision.APIKey != "" {
		client := vision.NewClient(vision.Config{
			Endpoint: cfg.Vision.Endpoint,
			APIKey:   cfg.Vision.APIKey,
			Timeout:  cfg.Vision.Timeout,
		}, logger)
		strategies = append(strategies, vision.NewStrategy(client, raster, cfg.OCR.Workers, logger))
	}
	if cfg.LLM.APIKey != "" {
		client := llm.NewClient(llm.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		strategies = append(strategies, llm.NewStrategy(client, raster, logger))
	}

	proc := pipeline.NewProcessor(logger, fetcher, extract.NewPipeline(logger, strategies...))

	start := time.Now()
	fields, err := proc.ProcessURL(ctx, rawURL)
	if err != nil {
		logger.Error("parse failed",
			"url", rawURL,
			"kind", common.KindOf(err),
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fields); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}
