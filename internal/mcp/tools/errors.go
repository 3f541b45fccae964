package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/pkg/client"
	"github.com/usestring/easyeda-mcp/pkg/productpage"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeExtractionFailed = "EXTRACTION_FAILED"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// Classify returns the error code for err without logging.
func Classify(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}

	var apiErr *client.APIError
	var netErr net.Error
	switch {
	case errors.Is(err, component.ErrInvalidID):
		return ErrCodeInvalidInput
	case errors.Is(err, client.ErrComponentNotFound),
		errors.Is(err, client.ErrModelNotFound),
		errors.Is(err, component.ErrNoModel):
		return ErrCodeNotFound
	case errors.As(err, &apiErr):
		if apiErr.NotFound() {
			return ErrCodeNotFound
		}
		return ErrCodeUpstream
	case errors.Is(err, productpage.ErrNotFound),
		errors.Is(err, productpage.ErrMalformedPayload),
		errors.Is(err, productpage.ErrSchemaMismatch):
		return ErrCodeExtractionFailed
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return ErrCodeTimeout
	default:
		return ErrCodeUpstream
	}
}

// WrapUpstreamError converts a client, service or extraction error to a
// coded error and logs it.
func WrapUpstreamError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	code := Classify(err)
	msg := err.Error()
	var apiErr *client.APIError
	switch {
	case code == ErrCodeTimeout:
		msg = "request timed out"
	case errors.As(err, &apiErr):
		msg = apiErr.Message
	}

	coded = &CodedError{Code: code, Message: msg, Cause: err}
	slog.Warn("tool call failed",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)
	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
