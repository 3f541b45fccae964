// Package textquery extracts text from LCSC product pages with CSS
// selectors, XPath, regular expressions or jq over the decoded page state.
package textquery

import (
	"context"

	"github.com/usestring/easyeda-mcp/internal/query"
	"github.com/usestring/easyeda-mcp/pkg/productpage"
)

// Engine dispatches text extraction queries to mode-specific handlers.
type Engine struct {
	jq     *query.Engine
	marker string
}

// NewEngine creates a new text query engine.
func NewEngine() *Engine {
	return NewEngineWithMarker(productpage.NuxtStateMarker)
}

// NewEngineWithMarker creates an engine whose state mode looks for the
// given script marker.
func NewEngineWithMarker(marker string) *Engine {
	return &Engine{jq: query.NewEngine(), marker: marker}
}

// Query extracts data from a page using the specified mode and expression.
// An empty mode means DefaultMode.
func (e *Engine) Query(ctx context.Context, body []byte, expression, mode string, maxResults int) (*QueryResult, error) {
	if mode == "" {
		mode = DefaultMode
	}

	switch mode {
	case ModeCSS:
		return QueryCSS(body, expression, maxResults)
	case ModeXPath:
		return QueryXPath(body, expression, maxResults)
	case ModeRegex:
		return QueryRegex(body, expression, maxResults)
	case ModeState:
		return e.QueryState(ctx, body, expression, maxResults)
	default:
		return nil, unknownMode(mode)
	}
}

// ValidateExpression checks if an expression is valid for the given mode.
func (e *Engine) ValidateExpression(expression, mode string) error {
	if mode == "" {
		mode = DefaultMode
	}

	switch mode {
	case ModeCSS:
		return ValidateCSS(expression)
	case ModeXPath:
		return ValidateXPath(expression)
	case ModeRegex:
		return ValidateRegex(expression)
	case ModeState:
		return e.jq.ValidateExpression(expression)
	default:
		return unknownMode(mode)
	}
}
