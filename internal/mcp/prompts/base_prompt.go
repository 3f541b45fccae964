package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleBasePrompt serves the tool usage guide. The enrichment section
// depends on whether page failures are fatal.
func HandleBasePrompt(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Efficient Tool Usage Guide\n\n")

		sb.WriteString("## Which Tool\n\n")
		sb.WriteString("| Goal | Tool | Example |\n")
		sb.WriteString("|------|------|--------|\n")
		sb.WriteString("| Symbol, footprint and parameters of one part | `easyeda_get_component` | `lcsc_id: \"C25804\"` |\n")
		sb.WriteString("| Quick overview of several parts | `easyeda_get_components` | `lcsc_ids: [\"C25804\", \"C19702\"]` |\n")
		sb.WriteString("| Parameter table only | `easyeda_get_parameters` | `lcsc_id: \"C25804\"` |\n")
		sb.WriteString("| One field across parts | `easyeda_query_component` | `expression: \".parameters.Value\"` |\n")
		sb.WriteString("| Something only the product page shows | `easyeda_query_page` | `mode: \"state\", expression: \".data[0].detail.stockNumber\"` |\n")
		sb.WriteString("| Field layout of CAD records before writing jq | `easyeda_infer_schema` | `lcsc_ids: [\"C25804\"], field_stats: true` |\n")
		sb.WriteString("| 3D model of the footprint | `easyeda_get_3d_model` | `lcsc_id: \"C25804\"` |\n")

		sb.WriteString("\n## Token Budget\n")
		sb.WriteString("- `easyeda_get_component` returns compacted CAD data by default. Check `compact_stats` to see what was trimmed\n")
		sb.WriteString("- Use `cad_mode: \"none\"` when only parameters are needed\n")
		sb.WriteString("- Use `cad_mode: \"full\"` or the `easyeda://component/{lcsc_id}` resource only when raw shapes are needed\n")
		fmt.Fprintf(&sb, "- Batch tools accept at most %d part numbers per call\n", cfg.MaxBatchSize)

		sb.WriteString("\n## Derived Parameters\n")
		sb.WriteString("- `Category` is the leaf of the product page breadcrumb\n")
		sb.WriteString("- `Value` is copied from Resistance, Capacitance or Inductance for resistors, capacitors and inductors\n")
		sb.WriteString("- `Package` is the package row of the product page\n")

		sb.WriteString("\n## Enrichment Failures\n")
		if cfg.StrictEnrichment {
			sb.WriteString("- Strict mode is on: a product page that cannot be decoded fails the lookup with `EXTRACTION_FAILED`\n")
		} else {
			sb.WriteString("- A product page that cannot be decoded does not fail the lookup. The record carries `enrichment_error` and empty parameters\n")
			sb.WriteString("- Retry with `easyeda_get_parameters` to see the extraction error itself\n")
		}

		return &sdkmcp.GetPromptResult{
			Description: "Guide for choosing EasyEDA tools and keeping responses small",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
