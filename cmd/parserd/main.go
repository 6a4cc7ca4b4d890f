package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/KHCFirm/pdf-parser/internal/common"
	"github.com/KHCFirm/pdf-parser/internal/extract"
	"github.com/KHCFirm/pdf-parser/internal/fetch"
	"github.com/KHCFirm/pdf-parser/internal/llm"
	"github.com/KHCFirm/pdf-parser/internal/ocr"
	"github.com/KHCFirm/pdf-parser/internal/pipeline"
	"github.com/KHCFirm/pdf-parser/internal/server"
	"github.com/KHCFirm/pdf-parser/internal/vision"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	proc := buildProcessor(cfg, logger)
	svc := server.NewService(proc, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: svc.Router(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}

// buildProcessor wires the strategy ladder cheapest-first. Remote strategies
// join the ladder only when their API keys are configured.
func buildProcessor(cfg *common.Config, logger *slog.Logger) *pipeline.Processor {
	fetcher := fetch.NewFetcher(fetch.Config{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
		Referer:   cfg.Fetch.Referer,
	}, nil, logger)

	raster := ocr.RasterConfig{
		Pdftoppm: cfg.OCR.Pdftoppm,
		DPI:      cfg.OCR.DPI,
		MaxPages: cfg.OCR.MaxPages,
	}

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
	} else {
		logger.Warn("VISION_API_KEY not set; remote vision OCR disabled")
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
	} else {
		logger.Warn("OPENAI_API_KEY not set; structured extraction disabled")
	}

	pipe := extract.NewPipeline(logger, strategies...)
	return pipeline.NewProcessor(logger, fetcher, pipe)
}
