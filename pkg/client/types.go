package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrComponentNotFound is returned when the components API has no CAD
	// data for a part.
	ErrComponentNotFound = errors.New("component not found")
	// ErrModelNotFound is returned when the 3D model endpoint does not
	// answer 200 for a UUID.
	ErrModelNotFound = errors.New("3D model not found")
)

// APIError represents an unsuccessful HTTP response from EasyEDA or LCSC.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the response was a 404 or 410.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
}

// ResponseError is returned when a response body does not have the
// expected structure.
type ResponseError struct {
	Endpoint string
	Problems []string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected %s response: %s", e.Endpoint, strings.Join(e.Problems, "; "))
}
