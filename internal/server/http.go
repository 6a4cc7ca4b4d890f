package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KHCFirm/pdf-parser/internal/common"
)

// Processor is the extraction core the handler delegates to.
type Processor interface {
	ProcessURL(ctx context.Context, rawURL string) (map[string]string, error)
}

// Service exposes the parser over HTTP: GET /parse?url=<document-url>.
type Service struct {
	proc   Processor
	logger *slog.Logger
}

func NewService(proc Processor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{proc: proc, logger: logger}
}

// Router builds the HTTP routes.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/parse", s.handleParse)
	return r
}

type errorPayload struct {
	Kind    common.Kind `json:"kind"`
	Message string      `json:"message"`
}

type parseResponse struct {
	Fields map[string]string `json:"fields,omitempty"`
	Error  *errorPayload     `json:"error,omitempty"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleParse(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeJSON(w, http.StatusBadRequest, parseResponse{Error: &errorPayload{
			Kind:    common.KindInvalidReference,
			Message: "provide a document URL via the 'url' query parameter",
		}})
		return
	}

	fields, err := s.proc.ProcessURL(r.Context(), rawURL)
	if err != nil {
		kind := common.KindOf(err)
		writeJSON(w, statusFor(kind), parseResponse{Error: &errorPayload{
			Kind:    kind,
			Message: err.Error(),
		}})
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{Fields: fields})
}

// statusFor maps an error kind to an HTTP status. The success/error payloads
// are mutually exclusive; a request never gets partial fields plus an error.
func statusFor(kind common.Kind) int {
	switch kind {
	case common.KindInvalidReference:
		return http.StatusBadRequest
	case common.KindFetchTimeout:
		return http.StatusGatewayTimeout
	case common.KindFetchFailed, common.KindFetchError:
		return http.StatusBadGateway
	case common.KindNoTextExtracted:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
