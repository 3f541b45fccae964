package mcpsrv

import (
	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/internal/config"
	"github.com/usestring/easyeda-mcp/internal/query"
	"github.com/usestring/easyeda-mcp/pkg/client"
	"github.com/usestring/easyeda-mcp/pkg/textquery"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client     *client.Client
	Components *component.Service
	Query      *query.Engine
	TextQuery  *textquery.Engine
	Config     *config.Config
}
