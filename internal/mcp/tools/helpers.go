// Package tools contains the MCP tool implementations.
package tools

import (
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MIME type constants.
const (
	MimeJSON = "application/json"
	MimeOBJ  = "model/obj"
)

// ComponentURIPrefix prefixes component resource URIs.
const ComponentURIPrefix = "easyeda://component/"

// ComponentURI returns the resource URI of a component record.
func ComponentURI(lcscID string) string {
	return ComponentURIPrefix + lcscID
}

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// limit returns v when it is in (0, max], def when v is not positive, and
// max otherwise.
func limit(v, def, max int) int {
	if v <= 0 {
		v = def
	}
	if max > 0 && v > max {
		v = max
	}
	return v
}
