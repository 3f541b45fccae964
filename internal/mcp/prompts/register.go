package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "tool_guide",
		Description: "RECOMMENDED: Which EasyEDA tool to use for which question, and how to keep responses small. Read this before the first lookup.",
	}, HandleBasePrompt(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "compare_parts",
		Description: "Compare candidate LCSC parts on parameters, package and 3D model availability, then recommend one.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "lcsc_ids",
				Description: "Comma-separated LCSC part numbers to compare (e.g., 'C25804, C25744')",
				Required:    false,
			},
			{
				Name:        "requirement",
				Description: "What the part must satisfy (e.g., '10k 1% 0603, at least 100mW')",
				Required:    false,
			},
		},
	}, HandleCompareParts(cfg))
}
