package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/pkg/productpage"
)

// ParametersInput is the input for easyeda_get_parameters.
type ParametersInput struct {
	LCSCID string `json:"lcsc_id" jsonschema:"required,LCSC part number such as C25804"`
}

// ParametersOutput is the output for easyeda_get_parameters.
type ParametersOutput struct {
	LCSCID      string            `json:"lcsc_id"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Value       string            `json:"value,omitempty"`
	Package     string            `json:"package"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

// ToolGetParameters extracts the parameter table of a part from its LCSC
// product page only. Unlike easyeda_get_component, extraction failures are
// always returned as errors.
func ToolGetParameters(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ParametersInput) (*sdkmcp.CallToolResult, ParametersOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ParametersInput) (*sdkmcp.CallToolResult, ParametersOutput, error) {
		id, err := component.NormalizeID(input.LCSCID)
		if err != nil {
			return nil, ParametersOutput{}, WrapUpstreamError(err)
		}

		page, err := d.Components.PageData(ctx, id)
		if err != nil {
			return nil, ParametersOutput{}, WrapUpstreamError(err)
		}

		return nil, ParametersOutput{
			LCSCID:      id,
			Description: page.Description,
			Category:    page.Parameters[productpage.ParamCategory],
			Value:       page.Parameters[productpage.ParamValue],
			Package:     page.Parameters[productpage.ParamPackage],
			Parameters:  page.Parameters,
		}, nil
	}
}
