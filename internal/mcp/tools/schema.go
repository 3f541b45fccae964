package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/easyeda-mcp/internal/query"
	"github.com/usestring/easyeda-mcp/pkg/schemainfer"
)

// InferSchemaInput is the input for easyeda_infer_schema.
type InferSchemaInput struct {
	LCSCIDs    []string `json:"lcsc_ids" jsonschema:"required,LCSC part numbers whose CAD records are merged into one schema"`
	FieldStats bool     `json:"field_stats,omitempty" jsonschema:"Also return per-field frequency, examples and detected formats (default: false)"`
	MaxDepth   int      `json:"max_depth,omitempty" jsonschema:"Field table depth limit (default: 5)"`
}

// InferSchemaOutput is the output for easyeda_infer_schema.
type InferSchemaOutput struct {
	Schema      any                     `json:"schema,omitempty"`
	SampleCount int                     `json:"sample_count"`
	AllMatch    bool                    `json:"all_match"`
	Fields      []schemainfer.FieldStat `json:"fields,omitzero"`
	Errors      []string                `json:"errors,omitempty"`
}

// ToolInferSchema infers one JSON Schema describing the enriched CAD records
// of several parts. Parts that cannot be fetched are reported in Errors.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
		if len(input.LCSCIDs) == 0 {
			return nil, InferSchemaOutput{}, ErrInvalidInput("lcsc_ids is required")
		}
		if max := d.Config.MaxBatchSize; max > 0 && len(input.LCSCIDs) > max {
			return nil, InferSchemaOutput{}, ErrInvalidInput(fmt.Sprintf("too many lcsc_ids: at most %d per call", max))
		}

		var (
			samples  []any
			errs     []string
			firstErr error
		)
		for _, r := range d.Components.GetMany(ctx, input.LCSCIDs) {
			if r.Err != nil {
				if firstErr == nil {
					firstErr = r.Err
				}
				errs = append(errs, fmt.Sprintf("%s: %v", r.LCSCID, r.Err))
				continue
			}
			v, err := query.Normalize(r.Record.CAD)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				errs = append(errs, fmt.Sprintf("%s: %v", r.LCSCID, err))
				continue
			}
			samples = append(samples, v)
		}
		if len(samples) == 0 {
			return nil, InferSchemaOutput{}, WrapUpstreamError(firstErr)
		}

		opts := schemainfer.DefaultOptions()
		opts.FieldStats = input.FieldStats
		opts.MaxDepth = input.MaxDepth
		res := schemainfer.Infer(samples, opts)

		return nil, InferSchemaOutput{
			Schema:      res.Schema,
			SampleCount: res.SampleCount,
			AllMatch:    res.AllMatch,
			Fields:      res.Fields,
			Errors:      errs,
		}, nil
	}
}
