package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/pkg/jsoncompact"
	"github.com/usestring/easyeda-mcp/pkg/productpage"
	"github.com/usestring/easyeda-mcp/pkg/schemainfer"
)

// CAD output modes for easyeda_get_component.
const (
	CADModeCompact = "compact"
	CADModeFull    = "full"
	CADModeNone    = "none"
	CADModeSchema  = "schema"
)

// ComponentInput is the input for easyeda_get_component.
type ComponentInput struct {
	LCSCID  string `json:"lcsc_id" jsonschema:"required,LCSC part number such as C25804"`
	CADMode string `json:"cad_mode,omitempty" jsonschema:"CAD payload detail: compact (default) trims long arrays and strings, full returns everything, schema returns an inferred JSON Schema of the payload, none omits it"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"Bypass the cache and fetch again (default: false)"`
}

// ComponentOutput is the output for easyeda_get_component.
type ComponentOutput struct {
	LCSCID          string              `json:"lcsc_id"`
	Title           string              `json:"title,omitempty"`
	Description     string              `json:"description"`
	Parameters      map[string]string   `json:"parameters,omitempty"`
	CAD             any                 `json:"cad,omitempty"`
	CompactStats    *jsoncompact.Stats  `json:"compact_stats,omitempty"`
	Model           *component.ModelRef `json:"model,omitempty"`
	EnrichmentError string              `json:"enrichment_error,omitempty"`
	FetchedAt       string              `json:"fetched_at"`
	ResourceURI     string              `json:"resource_uri"`
}

// ToolGetComponent returns the CAD data of a part enriched with the
// parameters and description from its LCSC product page.
func ToolGetComponent(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ComponentInput) (*sdkmcp.CallToolResult, ComponentOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ComponentInput) (*sdkmcp.CallToolResult, ComponentOutput, error) {
		if input.LCSCID == "" {
			return nil, ComponentOutput{}, ErrInvalidInput("lcsc_id is required")
		}
		mode := input.CADMode
		if mode == "" {
			mode = CADModeCompact
		}
		switch mode {
		case CADModeCompact, CADModeFull, CADModeNone, CADModeSchema:
		default:
			return nil, ComponentOutput{}, ErrInvalidInput("cad_mode must be 'compact', 'full', 'schema', or 'none'")
		}

		get := d.Components.Get
		if input.Refresh {
			get = d.Components.Refresh
		}
		rec, err := get(ctx, input.LCSCID)
		if err != nil {
			return nil, ComponentOutput{}, WrapUpstreamError(err)
		}

		output := ComponentOutput{
			LCSCID:          rec.LCSCID,
			Title:           rec.Title,
			Description:     rec.Description,
			Parameters:      rec.Parameters,
			EnrichmentError: rec.EnrichmentError,
			FetchedAt:       rec.FetchedAt.UTC().Format(time.RFC3339),
			ResourceURI:     ComponentURI(rec.LCSCID),
		}
		if ref, ok := rec.ModelRef(); ok {
			output.Model = &ref
		}

		switch mode {
		case CADModeFull:
			output.CAD = rec.CAD
		case CADModeSchema:
			output.CAD = schemainfer.InferValue(rec.CAD)
		case CADModeCompact:
			compacted, stats := jsoncompact.CompactValue(rec.CAD, d.CompactOptions())
			output.CAD = compacted
			if stats.Changed() {
				output.CompactStats = &stats
			}
		}

		return nil, output, nil
	}
}

// ComponentsInput is the input for easyeda_get_components.
type ComponentsInput struct {
	LCSCIDs []string `json:"lcsc_ids" jsonschema:"required,LCSC part numbers to look up"`
}

// ComponentSummary is one part in an easyeda_get_components result.
type ComponentSummary struct {
	LCSCID          string `json:"lcsc_id"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category,omitempty"`
	Value           string `json:"value,omitempty"`
	Package         string `json:"package,omitempty"`
	HasModel        bool   `json:"has_model,omitempty"`
	EnrichmentError string `json:"enrichment_error,omitempty"`
	Error           string `json:"error,omitempty"`
	Code            string `json:"code,omitempty"`
}

// ComponentsOutput is the output for easyeda_get_components.
type ComponentsOutput struct {
	Components []ComponentSummary `json:"components,omitzero"`
	Found      int                `json:"found"`
	Failed     int                `json:"failed"`
}

// ToolGetComponents looks up several parts concurrently. Per-part failures
// are reported in the summaries rather than failing the call.
func ToolGetComponents(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ComponentsInput) (*sdkmcp.CallToolResult, ComponentsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ComponentsInput) (*sdkmcp.CallToolResult, ComponentsOutput, error) {
		if len(input.LCSCIDs) == 0 {
			return nil, ComponentsOutput{}, ErrInvalidInput("lcsc_ids is required")
		}
		if max := d.Config.MaxBatchSize; max > 0 && len(input.LCSCIDs) > max {
			return nil, ComponentsOutput{}, ErrInvalidInput(fmt.Sprintf("too many lcsc_ids: at most %d per call", max))
		}

		results := d.Components.GetMany(ctx, input.LCSCIDs)
		output := ComponentsOutput{Components: make([]ComponentSummary, 0, len(results))}
		for _, r := range results {
			summary := ComponentSummary{LCSCID: r.LCSCID}
			if r.Err != nil {
				summary.Error = r.Err.Error()
				summary.Code = Classify(r.Err)
				output.Failed++
				output.Components = append(output.Components, summary)
				continue
			}

			rec := r.Record
			summary.LCSCID = rec.LCSCID
			summary.Title = rec.Title
			summary.Description = rec.Description
			summary.Category = rec.Parameters[productpage.ParamCategory]
			summary.Value = rec.Parameters[productpage.ParamValue]
			summary.Package = rec.Parameters[productpage.ParamPackage]
			_, summary.HasModel = rec.ModelRef()
			summary.EnrichmentError = rec.EnrichmentError
			output.Found++
			output.Components = append(output.Components, summary)
		}

		return nil, output, nil
	}
}
