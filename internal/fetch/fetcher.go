package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/KHCFirm/pdf-parser/internal/common"
	"github.com/KHCFirm/pdf-parser/internal/extract"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Config for the document fetcher.
type Config struct {
	Timeout   time.Duration // default 30s
	UserAgent string        // realistic client identity; some origins block obvious bots
	Referer   string
}

// Fetcher downloads a document by URL. One GET, no retries; retry policy
// belongs to the caller.
type Fetcher struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewFetcher builds a Fetcher around the given client. Pass nil to get a
// default client bound to cfg.Timeout; tests inject their own transport.
func NewFetcher(cfg Config, client *http.Client, logger *slog.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Referer == "" {
		cfg.Referer = "https://www.google.com/"
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{cfg: cfg, client: client, logger: logger}
}

// Fetch validates the reference and downloads it. The scheme check happens
// before any network I/O; a malformed reference never touches the transport.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (extract.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return extract.Document{}, common.NewAppError(common.KindInvalidReference,
			fmt.Sprintf("not a valid http(s) url: %q", rawURL), err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return extract.Document{}, common.NewAppError(common.KindInvalidReference, "build request", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf,application/octet-stream;q=0.9,*/*;q=0.8")
	if f.cfg.Referer != "" {
		req.Header.Set("Referer", f.cfg.Referer)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			f.logger.Warn("fetch.timeout", "url", u.String(), "timeout", f.cfg.Timeout)
			return extract.Document{}, common.NewAppError(common.KindFetchTimeout, "fetch timed out", err)
		}
		f.logger.Warn("fetch.transport_error", "url", u.String(), "error", err)
		return extract.Document{}, common.NewAppError(common.KindFetchError, "fetch failed", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			f.logger.Warn("fetch.body_close_error", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("fetch.bad_status", "url", u.String(), "status", resp.StatusCode)
		return extract.Document{}, &common.AppError{
			Kind:    common.KindFetchFailed,
			Message: "origin returned non-2xx status",
			Status:  resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return extract.Document{}, common.NewAppError(common.KindFetchTimeout, "fetch timed out reading body", err)
		}
		return extract.Document{}, common.NewAppError(common.KindFetchError, "read body", err)
	}

	f.logger.Info("fetch.ok",
		"url", u.String(),
		"status", resp.StatusCode,
		"bytes", len(body),
		"content_type", resp.Header.Get("Content-Type"),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return extract.Document{
		Data:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
