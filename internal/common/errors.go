package common

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers that need to branch on it
// (HTTP status mapping, retry decisions) without parsing messages.
type Kind string

const (
	KindInvalidReference  Kind = "INVALID_REFERENCE"
	KindFetchFailed       Kind = "FETCH_FAILED"
	KindFetchTimeout      Kind = "FETCH_TIMEOUT"
	KindFetchError        Kind = "FETCH_ERROR"
	KindExtractionFailed  Kind = "EXTRACTION_FAILED"
	KindNoTextExtracted   Kind = "NO_TEXT_EXTRACTED"
	KindMalformedResponse Kind = "MALFORMED_REMOTE_RESPONSE"
	KindInternal          Kind = "INTERNAL"
)

// AppError is the structured error surfaced at the service boundary.
type AppError struct {
	Kind    Kind
	Message string
	Status  int // HTTP status from the origin server, for FETCH_FAILED
	Cause   error
}

func (e *AppError) Error() string {
	switch {
	case e.Status != 0 && e.Cause != nil:
		return fmt.Sprintf("%s: %s (status %d): %v", e.Kind, e.Message, e.Status, e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// Kinder is implemented by domain error types that know their own kind
// without being an AppError.
type Kinder interface {
	ErrorKind() Kind
}

// KindOf unwraps err to its kind, or KindInternal if it has none.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	var k Kinder
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindInternal
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
