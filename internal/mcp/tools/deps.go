package tools

import (
	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/internal/config"
	"github.com/usestring/easyeda-mcp/internal/query"
	"github.com/usestring/easyeda-mcp/pkg/jsoncompact"
	"github.com/usestring/easyeda-mcp/pkg/textquery"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Components *component.Service
	Query      *query.Engine
	TextQuery  *textquery.Engine
	Config     *config.Config
}

// CompactOptions returns the configured compaction settings for CAD output.
// Page-derived keys are never trimmed.
func (d *Deps) CompactOptions() *jsoncompact.Options {
	return &jsoncompact.Options{
		MaxArrayItems: d.Config.CompactMaxArrayItems,
		MaxStringLen:  d.Config.CompactMaxStringLen,
		MaxDepth:      d.Config.CompactMaxDepth,
		KeepKeys:      []string{component.KeyParameters, component.KeyDescription},
	}
}
