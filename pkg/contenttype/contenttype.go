// Package contenttype classifies upstream responses by their Content-Type
// header.
package contenttype

import (
	"mime"
	"strings"
	"unicode/utf8"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON    Category = "json"
	HTML    Category = "html"
	XML     Category = "xml"
	Text    Category = "text"
	Binary  Category = "binary"
	Unknown Category = "unknown"
)

// Classify returns the broad content category for a content-type header value.
// Parameters (charset etc.) are ignored. Returns Unknown for an empty value.
func Classify(contentType string) Category {
	if strings.TrimSpace(contentType) == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.Contains(mediaType, "json"):
		return JSON
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return HTML
	case strings.Contains(mediaType, "xml"):
		return XML
	case strings.HasPrefix(mediaType, "text/"),
		strings.Contains(mediaType, "javascript"),
		mediaType == "model/obj":
		return Text
	default:
		return Binary
	}
}

// IsPage reports whether a product page response can hold HTML. JSON
// bodies (API error envelopes) and binary content cannot.
func IsPage(contentType string) bool {
	switch Classify(contentType) {
	case HTML, XML, Text, Unknown:
		return true
	default:
		return false
	}
}

// IsText reports whether data is textual. An unknown content type falls
// back to UTF-8 validation of data.
func IsText(contentType string, data []byte) bool {
	switch Classify(contentType) {
	case Binary:
		return false
	case Unknown:
		return utf8.Valid(data)
	default:
		return true
	}
}

// IsJSON returns true if the content type indicates JSON (case-insensitive).
func IsJSON(contentType string) bool {
	return Classify(contentType) == JSON
}
