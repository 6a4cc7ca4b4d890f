package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KHCFirm/pdf-parser/internal/common"
)

// Config for the Google Cloud Vision OCR client.
type Config struct {
	Endpoint string        // default https://vision.googleapis.com
	APIKey   string        // if empty, falls back to env VISION_API_KEY handled by caller
	Timeout  time.Duration // http client timeout
}

// Client calls the images:annotate endpoint with DOCUMENT_TEXT_DETECTION.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://vision.googleapis.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type annotateResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// Annotate runs document text detection on one page image and returns the
// recognized text. A service-level error for the image is returned as an
// error; empty text with no error is a valid "nothing recognized" outcome.
func (c *Client) Annotate(ctx context.Context, image []byte) (string, error) {
	body := map[string]any{
		"requests": []map[string]any{{
			"image":    map[string]any{"content": base64.StdEncoding.EncodeToString(image)},
			"features": []map[string]any{{"type": "DOCUMENT_TEXT_DETECTION"}},
		}},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.Endpoint, "/") + "/v1/images:annotate?key=" + c.cfg.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("vision response body close error", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("vision read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("vision status %d: %s", resp.StatusCode, truncate(string(raw), 512))
	}

	var ar annotateResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return "", common.NewAppError(common.KindMalformedResponse, "decode vision response", err)
	}
	if len(ar.Responses) == 0 {
		return "", common.NewAppError(common.KindMalformedResponse, "vision response has no entries", nil)
	}
	r := ar.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision annotate error %d: %s", r.Error.Code, r.Error.Message)
	}

	c.logger.Debug("vision.annotate.ok",
		"bytes_in", len(image),
		"bytes_out", len(r.FullTextAnnotation.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return r.FullTextAnnotation.Text, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
