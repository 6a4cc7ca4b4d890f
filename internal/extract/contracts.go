package extract

import (
	"context"
	"strings"
	"time"
)

// PageSeparator joins per-page text blocks; \f mirrors what pdftotext emits.
const PageSeparator = "\n\f\n"

// Document is the raw bytes of a fetched document plus a content-type hint.
// It is never mutated after the fetcher hands it over.
type Document struct {
	Data        []byte
	ContentType string
}

// Result is what a single strategy produced. Exactly one of Pages/Fields is
// meaningful: text strategies fill Pages, the structured strategy fills Fields.
type Result struct {
	Pages    []string
	Fields   map[string]string
	Method   string
	Warnings []string
	Duration time.Duration
}

// Text concatenates the per-page blocks in page order.
func (r Result) Text() string {
	return strings.Join(r.Pages, PageSeparator)
}

// Empty reports whether the strategy produced nothing usable. An empty-but-
// successful result is a valid outcome meaning "try the next strategy".
func (r Result) Empty() bool {
	if len(r.Fields) > 0 {
		return false
	}
	for _, p := range r.Pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

// Strategy is one mechanism for turning document bytes into text (or, for the
// structured variant, directly into named fields).
type Strategy interface {
	Name() string
	Extract(ctx context.Context, doc Document) (Result, error)
}
