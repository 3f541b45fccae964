package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/internal/mcp/tools"
	"github.com/usestring/easyeda-mcp/pkg/productpage"
)

// Resource URI scheme: easyeda://
// Supported URIs:
//   easyeda://component/{lcsc_id}
//   easyeda://state/{lcsc_id}
//   easyeda://model/{uuid}

const resourceScheme = "easyeda://"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "easyeda://component/{lcsc_id}",
		Name:        "Component Record",
		Description: "Full enriched component record with uncompacted CAD data. High context cost - easyeda_get_component already returns a compacted view. Only fetch when raw symbol or footprint shapes are needed.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceComponent)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "easyeda://state/{lcsc_id}",
		Name:        "Product Page State",
		Description: "The decoded window.__NUXT__ state object of a part's LCSC product page. High context cost - use easyeda_query_page with mode=state to pick single fields.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceState)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "easyeda://model/{uuid}",
		Name:        "3D Model",
		Description: "Untruncated OBJ text of a 3D model. High context cost - easyeda_get_3d_model returns counts and a truncated body.",
		MIMEType:    tools.MimeOBJ,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.2,
		},
	}, s.handleResourceModel)
}

func (s *Server) handleResourceComponent(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	rec, err := s.deps.Components.Get(ctx, params["lcsc_id"])
	if err != nil {
		return nil, resourceError(req.Params.URI, err)
	}

	return toResourceResult(req.Params.URI, rec)
}

func (s *Server) handleResourceState(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	doc, _, err := s.deps.Components.PageDocument(ctx, params["lcsc_id"])
	if err != nil {
		return nil, resourceError(req.Params.URI, err)
	}
	script, err := productpage.LocateScriptWithMarker(doc, s.deps.Config.StateMarker)
	if err != nil {
		return nil, resourceError(req.Params.URI, err)
	}
	root, err := productpage.Reconstruct(script)
	if err != nil {
		return nil, resourceError(req.Params.URI, err)
	}

	data, err := root.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}
	return textResult(req.Params.URI, tools.MimeJSON, string(data)), nil
}

func (s *Server) handleResourceModel(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	obj, err := s.deps.Components.Model(ctx, params["uuid"])
	if err != nil {
		return nil, resourceError(req.Params.URI, err)
	}

	return textResult(req.Params.URI, tools.MimeOBJ, obj), nil
}

// resourceError maps not-found failures to the protocol's resource not
// found error and everything else to a coded tool error.
func resourceError(uri string, err error) error {
	if tools.Classify(err) == tools.ErrCodeNotFound {
		return sdkmcp.ResourceNotFoundError(uri)
	}
	return tools.WrapUpstreamError(err)
}

// parseResourceURI extracts parameters from an easyeda:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	resourceType := parts[0]
	if resourceType == "" {
		return nil, tools.ErrInvalidInput("empty resource path")
	}

	params := make(map[string]string)
	switch resourceType {
	case "component", "state":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput(resourceType + " URI requires an LCSC part number")
		}
		id, err := component.NormalizeID(parts[1])
		if err != nil {
			return nil, tools.ErrInvalidInput(err.Error())
		}
		params["lcsc_id"] = id

	case "model":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("model URI requires a model UUID")
		}
		params["uuid"] = parts[1]

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}
	return textResult(uri, tools.MimeJSON, string(data)), nil
}

func textResult(uri, mimeType, text string) *sdkmcp.ReadResourceResult {
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: mimeType,
				Text:     text,
			},
		},
	}
}
