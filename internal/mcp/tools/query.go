package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/internal/query"
	"github.com/usestring/easyeda-mcp/pkg/textquery"
)

// QueryComponentsInput is the input for easyeda_query_component.
type QueryComponentsInput struct {
	LCSCIDs     []string `json:"lcsc_ids" jsonschema:"required,LCSC part numbers whose records are queried"`
	Expression  string   `json:"expression" jsonschema:"required,jq expression run against each record's CAD object; $lcsc_id holds the part number"`
	Deduplicate bool     `json:"deduplicate,omitempty" jsonschema:"Remove duplicate values (default: false)"`
	MaxResults  int      `json:"max_results,omitempty" jsonschema:"Max values to return (default: 50)"`
}

// QueryComponentsOutput is the output for easyeda_query_component.
type QueryComponentsOutput struct {
	Values      []any          `json:"values,omitzero"`
	Count       int            `json:"count"`
	RawCount    int            `json:"raw_count"`
	LabelCounts map[string]int `json:"label_counts,omitempty"`
	Truncated   bool           `json:"truncated,omitempty"`
	Errors      []string       `json:"errors,omitempty"`
}

// ToolQueryComponent runs a jq expression over the enriched CAD records of
// one or more parts.
func ToolQueryComponent(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryComponentsInput) (*sdkmcp.CallToolResult, QueryComponentsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryComponentsInput) (*sdkmcp.CallToolResult, QueryComponentsOutput, error) {
		if input.Expression == "" {
			return nil, QueryComponentsOutput{}, ErrInvalidInput("expression is required")
		}
		if len(input.LCSCIDs) == 0 {
			return nil, QueryComponentsOutput{}, ErrInvalidInput("lcsc_ids is required")
		}
		if max := d.Config.MaxBatchSize; max > 0 && len(input.LCSCIDs) > max {
			return nil, QueryComponentsOutput{}, ErrInvalidInput(fmt.Sprintf("too many lcsc_ids: at most %d per call", max))
		}
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return nil, QueryComponentsOutput{}, ErrInvalidInput(err.Error())
		}

		var lookupErrors []string
		var firstErr error
		inputs := make([]query.Input, 0, len(input.LCSCIDs))
		for _, r := range d.Components.GetMany(ctx, input.LCSCIDs) {
			if r.Err != nil {
				if firstErr == nil {
					firstErr = r.Err
				}
				lookupErrors = append(lookupErrors, fmt.Sprintf("%s: %s", r.LCSCID, r.Err))
				continue
			}
			value, err := query.Normalize(r.Record.CAD)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				lookupErrors = append(lookupErrors, fmt.Sprintf("%s: %s", r.LCSCID, err))
				continue
			}
			inputs = append(inputs, query.Input{Label: r.Record.LCSCID, Value: value})
		}
		if len(inputs) == 0 {
			return nil, QueryComponentsOutput{}, WrapUpstreamError(firstErr)
		}

		result, err := d.Query.Run(ctx, input.Expression, inputs, query.Options{
			Deduplicate: input.Deduplicate,
			MaxResults:  limit(input.MaxResults, d.Config.DefaultQueryLimit, 0),
		})
		if err != nil {
			return nil, QueryComponentsOutput{}, WrapUpstreamError(err)
		}

		return nil, QueryComponentsOutput{
			Values:      result.Values,
			Count:       len(result.Values),
			RawCount:    result.RawCount,
			LabelCounts: result.LabelCounts,
			Truncated:   result.Truncated,
			Errors:      append(lookupErrors, result.Errors...),
		}, nil
	}
}

// QueryPageInput is the input for easyeda_query_page.
type QueryPageInput struct {
	LCSCID     string `json:"lcsc_id" jsonschema:"required,LCSC part number such as C25804"`
	Expression string `json:"expression" jsonschema:"required,Extraction expression: CSS selector (append @attr for an attribute), XPath, regex, or jq over the decoded page state"`
	Mode       string `json:"mode,omitempty" jsonschema:"Expression language: css (default), xpath, regex, or state"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Max values to return (default: 50)"`
}

// QueryPageOutput is the output for easyeda_query_page.
type QueryPageOutput struct {
	LCSCID    string   `json:"lcsc_id"`
	Mode      string   `json:"mode"`
	Values    []any    `json:"values,omitzero"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// ToolQueryPage extracts values from the raw LCSC product page of a part.
// The state mode runs jq over the reconstructed Nuxt state object.
func ToolQueryPage(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryPageInput) (*sdkmcp.CallToolResult, QueryPageOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryPageInput) (*sdkmcp.CallToolResult, QueryPageOutput, error) {
		if input.Expression == "" {
			return nil, QueryPageOutput{}, ErrInvalidInput("expression is required")
		}
		mode := input.Mode
		if mode == "" {
			mode = textquery.DefaultMode
		}
		if err := d.TextQuery.ValidateExpression(input.Expression, mode); err != nil {
			return nil, QueryPageOutput{}, ErrInvalidInput(err.Error())
		}

		id, err := component.NormalizeID(input.LCSCID)
		if err != nil {
			return nil, QueryPageOutput{}, WrapUpstreamError(err)
		}
		_, body, err := d.Components.PageDocument(ctx, id)
		if err != nil {
			return nil, QueryPageOutput{}, WrapUpstreamError(err)
		}

		result, err := d.TextQuery.Query(ctx, body, input.Expression, mode,
			limit(input.MaxResults, d.Config.DefaultQueryLimit, 0))
		if err != nil {
			return nil, QueryPageOutput{}, WrapUpstreamError(err)
		}

		values := result.Values
		if values == nil {
			values = []any{}
		}
		return nil, QueryPageOutput{
			LCSCID:    id,
			Mode:      result.Mode,
			Values:    values,
			Count:     len(values),
			Truncated: result.Truncated,
			Errors:    result.Errors,
		}, nil
	}
}
