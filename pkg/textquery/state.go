package textquery

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/usestring/easyeda-mcp/internal/query"
	"github.com/usestring/easyeda-mcp/pkg/productpage"
)

// QueryState reconstructs the page's Nuxt state script and evaluates a jq
// expression against it, e.g. `.data[0].detail.paramVOList[].paramNameEn`.
func (e *Engine) QueryState(ctx context.Context, body []byte, expression string, maxResults int) (*QueryResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	script, err := productpage.LocateScriptWithMarker(doc, e.marker)
	if err != nil {
		return nil, err
	}
	root, err := productpage.Reconstruct(script)
	if err != nil {
		return nil, err
	}

	res, err := e.jq.Run(ctx, expression, []query.Input{{Label: "state", Value: root.Interface()}}, query.Options{MaxResults: maxResults})
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Values:    res.Values,
		Count:     len(res.Values),
		Mode:      ModeState,
		Truncated: res.Truncated,
		Errors:    res.Errors,
	}, nil
}
