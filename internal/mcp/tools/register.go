package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "easyeda_get_component",
		Description: "Get an EasyEDA component by LCSC part number. Returns the CAD data (symbol, footprint, 3D model reference) merged with the parameters and description from the LCSC product page. Parameters include the derived Category, Value and Package entries. cad_mode controls the CAD payload: compact (default), full, schema (inferred JSON Schema of the payload), or none. If the product page cannot be used, enrichment_error is set and parameters are empty.",
	}, ToolGetComponent(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "easyeda_get_components",
		Description: "Look up several LCSC part numbers at once. Returns one summary per part (title, description, category, value, package, has_model) in input order; failed lookups carry error and code instead of failing the call.",
	}, ToolGetComponents(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "easyeda_get_parameters",
		Description: "Extract the parameter table of a part from its LCSC product page only. Returns name/value parameters plus category, value and package. Fails with EXTRACTION_FAILED when the page state script is missing, malformed, or has an unexpected shape.",
	}, ToolGetParameters(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "easyeda_query_component",
		Description: "Run a jq expression over the enriched CAD records of one or more parts. Each record is the components API result with parameters and description merged in; $lcsc_id is bound to the part number. Example: .parameters.Resistance",
	}, ToolQueryComponent(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "easyeda_query_page",
		Description: "Extract values from a part's raw LCSC product page. Modes: css (default; 'selector @attr' returns an attribute), xpath, regex (capture groups), and state (jq over the decoded window.__NUXT__ object, e.g. .data[0].detail.paramVOList[].paramNameEn).",
	}, ToolQueryPage(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "easyeda_infer_schema",
		Description: "Infer one JSON Schema describing the enriched CAD records of several parts, to learn the record layout before writing easyeda_query_component expressions. field_stats adds per-field frequency, examples and detected formats (lcsc_id, uuid, hex_uuid, url, iso8601, enum). all_match reports whether every part alone has the same schema.",
	}, ToolInferSchema(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "easyeda_get_3d_model",
		Description: "Get the OBJ text of a 3D model by uuid, or of the model referenced by a part's footprint via lcsc_id. Returns vertex and face counts; obj is truncated to max_bytes.",
	}, ToolGet3DModel(d))
}
