package tools

import (
	"bufio"
	"context"
	"strings"
	"unicode/utf8"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/easyeda-mcp/internal/component"
)

// ModelInput is the input for easyeda_get_3d_model.
type ModelInput struct {
	UUID     string `json:"uuid,omitempty" jsonschema:"3D model UUID from a component's model reference"`
	LCSCID   string `json:"lcsc_id,omitempty" jsonschema:"LCSC part number; its footprint's model is fetched when uuid is omitted"`
	MaxBytes int    `json:"max_bytes,omitempty" jsonschema:"Truncate the OBJ text to this many bytes (default: 1000000)"`
}

// ModelOutput is the output for easyeda_get_3d_model.
type ModelOutput struct {
	UUID      string `json:"uuid"`
	Title     string `json:"title,omitempty"`
	LCSCID    string `json:"lcsc_id,omitempty"`
	OBJ       string `json:"obj"`
	Bytes     int    `json:"bytes"`
	Truncated bool   `json:"truncated,omitempty"`
	Vertices  int    `json:"vertices"`
	Faces     int    `json:"faces"`
}

// ToolGet3DModel returns the OBJ text of a 3D model, either by UUID or via
// the footprint of a part.
func ToolGet3DModel(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ModelInput) (*sdkmcp.CallToolResult, ModelOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ModelInput) (*sdkmcp.CallToolResult, ModelOutput, error) {
		if input.UUID == "" && input.LCSCID == "" {
			return nil, ModelOutput{}, ErrInvalidInput("either uuid or lcsc_id is required")
		}

		var (
			ref component.ModelRef
			obj string
			err error
		)
		output := ModelOutput{}
		if input.UUID != "" {
			ref.UUID = input.UUID
			obj, err = d.Components.Model(ctx, input.UUID)
		} else {
			output.LCSCID, err = component.NormalizeID(input.LCSCID)
			if err == nil {
				ref, obj, err = d.Components.ModelForPart(ctx, output.LCSCID)
			}
		}
		if err != nil {
			return nil, ModelOutput{}, WrapUpstreamError(err)
		}

		output.UUID = ref.UUID
		output.Title = ref.Title
		output.Vertices, output.Faces = countOBJElements(obj)
		output.Bytes = len(obj)
		output.OBJ, output.Truncated = truncateUTF8(obj,
			limit(input.MaxBytes, d.Config.ModelMaxBytesDefault, 0))
		return nil, output, nil
	}
}

// countOBJElements counts vertex ("v") and face ("f") statements.
func countOBJElements(obj string) (vertices, faces int) {
	sc := bufio.NewScanner(strings.NewReader(obj))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "v "):
			vertices++
		case strings.HasPrefix(line, "f "):
			faces++
		}
	}
	return vertices, faces
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) (string, bool) {
	if n <= 0 || len(s) <= n {
		return s, false
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n], true
}
