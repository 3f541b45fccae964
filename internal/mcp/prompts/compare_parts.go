package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleCompareParts implements the part comparison workflow.
func HandleCompareParts(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var partIDs []string
		var requirement string
		if args := req.Params.Arguments; args != nil {
			for _, id := range strings.FieldsFunc(args["lcsc_ids"], func(r rune) bool {
				return r == ',' || r == ' '
			}) {
				partIDs = append(partIDs, strings.ToUpper(id))
			}
			requirement = strings.TrimSpace(args["requirement"])
		}

		var sb strings.Builder

		sb.WriteString("# Compare Candidate Parts\n\n")
		sb.WriteString("You are an electronics engineer choosing between LCSC parts for a board. ")
		sb.WriteString("Compare the candidates on their electrical parameters and package, then recommend one.\n\n")
		if requirement != "" {
			fmt.Fprintf(&sb, "**Requirement**: %s\n\n", requirement)
		}

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Overview** - Summarize all candidates in one call\n")
		sb.WriteString("   - Drop candidates whose `code` is NOT_FOUND\n")
		sb.WriteString("   - Note candidates with `enrichment_error`; their parameters are unknown\n\n")
		sb.WriteString("2. **Line up parameters** - Pull the same parameter from every candidate\n")
		sb.WriteString("   - Parameter names come from the product page, e.g. Tolerance, Voltage Rated\n\n")
		sb.WriteString("3. **Check the footprint** - Only for the finalists\n")
		sb.WriteString("   - `has_model: false` means no 3D model is available\n\n")

		ids := "\"C25804\", \"C25744\""
		if len(partIDs) > 0 {
			quoted := make([]string, len(partIDs))
			for i, id := range partIDs {
				quoted[i] = fmt.Sprintf("%q", id)
			}
			ids = strings.Join(quoted, ", ")
		}

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString("# Step 1: Overview\n")
		fmt.Fprintf(&sb, "easyeda_get_components(lcsc_ids=[%s])\n\n", ids)
		sb.WriteString("# Step 2: Parameters side by side\n")
		fmt.Fprintf(&sb, "easyeda_query_component(lcsc_ids=[%s], expression=\"{id: $lcsc_id, value: .parameters.Value, tolerance: .parameters.Tolerance, package: .parameters.Package}\")\n\n", ids)
		sb.WriteString("# Step 3: Footprint of a finalist\n")
		sb.WriteString("easyeda_get_component(lcsc_id=\"<finalist>\", cad_mode=\"compact\")\n")
		sb.WriteString("```\n\n")

		if len(partIDs) > cfg.MaxBatchSize && cfg.MaxBatchSize > 0 {
			fmt.Fprintf(&sb, "**Note**: %d candidates exceed the batch limit of %d. Split step 1 and 2 into several calls.\n\n",
				len(partIDs), cfg.MaxBatchSize)
		}

		sb.WriteString("## Output\n\n")
		sb.WriteString("A table with one row per candidate (LCSC ID, value, tolerance, package, rating) and a one-paragraph recommendation.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Compare candidate LCSC parts and recommend one",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
