// Package mcpsrv provides an extensible MCP server for EasyEDA and LCSC part
// data.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin tools, prompts, and resources. Users can extend the server
// with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with configuration from the environment:
//
//	server, err := mcpsrv.NewServer(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// Passing a *client.Client instead of nil uses that client for all upstream
// requests.
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    LCSCID string `json:"lcsc_id"`
//	}
//
//	type MyOutput struct {
//	    Value string `json:"value"`
//	}
//
//	server, err := mcpsrv.NewServer(nil,
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "part_value"}, func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            rec, err := d.Components.Get(ctx, in.LCSCID)
//	            if err != nil {
//	                return nil, MyOutput{}, err
//	            }
//	            return nil, MyOutput{Value: rec.Parameters["Value"]}, nil
//	        }
//	    }),
//	)
//
// # Configuration
//
// Configure logging and enrichment:
//
//	server, err := mcpsrv.NewServer(nil,
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/easyeda-mcp.log"),
//	    mcpsrv.WithStrictEnrichment(true),
//	)
package mcpsrv
