package productpage

import (
	"errors"
	"fmt"
)

// Sentinel errors for extraction failures. Use errors.Is to classify.
var (
	// ErrNotFound means the expected script or element is absent from the page.
	ErrNotFound = errors.New("productpage: not found")
	// ErrMalformedPayload means the marker was present but the script did not
	// have the expected delimiter structure, or a literal failed to parse.
	ErrMalformedPayload = errors.New("productpage: malformed payload")
	// ErrSchemaMismatch means the payload parsed but the parameter path or
	// fields are missing.
	ErrSchemaMismatch = errors.New("productpage: schema mismatch")
)

// Extraction stages reported in ExtractError.Stage.
const (
	StageLocate      = "locate"
	StageReconstruct = "reconstruct"
	StageProject     = "project"
)

// ExtractError carries the stage and detail of an extraction failure.
type ExtractError struct {
	Sentinel error
	Stage    string
	Message  string
	Cause    error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Sentinel, e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Sentinel, e.Stage, e.Message)
}

// Unwrap returns the cause so errors.As can reach e.g. *jsliteral.SyntaxError.
func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// Is supports errors.Is matching against the sentinel errors.
func (e *ExtractError) Is(target error) bool {
	return e.Sentinel == target
}

func notFound(message string) *ExtractError {
	return &ExtractError{Sentinel: ErrNotFound, Stage: StageLocate, Message: message}
}

func malformed(message string, cause error) *ExtractError {
	return &ExtractError{Sentinel: ErrMalformedPayload, Stage: StageReconstruct, Message: message, Cause: cause}
}

func schemaMismatch(format string, args ...any) *ExtractError {
	return &ExtractError{Sentinel: ErrSchemaMismatch, Stage: StageProject, Message: fmt.Sprintf(format, args...)}
}
