package mcpsrv

import (
	"context"
	"fmt"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/easyeda-mcp/internal/cache"
	"github.com/usestring/easyeda-mcp/internal/component"
	"github.com/usestring/easyeda-mcp/internal/config"
	"github.com/usestring/easyeda-mcp/internal/logging"
	"github.com/usestring/easyeda-mcp/internal/mcp"
	"github.com/usestring/easyeda-mcp/internal/mcp/tools"
	"github.com/usestring/easyeda-mcp/internal/query"
	"github.com/usestring/easyeda-mcp/pkg/client"
	"github.com/usestring/easyeda-mcp/pkg/textquery"
)

// Server is the EasyEDA MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin tools.
//
// c is the EasyEDA/LCSC API client. If nil, one is built from the
// environment configuration. Use functional options to configure logging,
// add custom tools, etc.
func NewServer(c *client.Client, opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	if cfg.logFormat != "" {
		logCfg.Format = cfg.logFormat
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	if c == nil {
		httpClient := cfg.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.config.HTTPClientTimeout}
		}
		c = client.New(append(cfg.config.ClientOptions(), client.WithHTTPClient(httpClient))...)
	}

	records, err := cache.New[*component.Record](cfg.config.CacheMaxItems, cfg.config.CacheTTL)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create component cache: %w", err)
	}

	components := component.NewService(c, records, component.Options{
		FetchWorkers:     cfg.config.FetchWorkers,
		StrictEnrichment: cfg.config.StrictEnrichment,
		Extractor:        cfg.config.Extractor(),
	})
	queryEngine := query.NewEngine()
	textQueryEngine := textquery.NewEngineWithMarker(cfg.config.StateMarker)

	toolDeps := &tools.Deps{
		Components: components,
		Query:      queryEngine,
		TextQuery:  textQueryEngine,
		Config:     cfg.config,
	}

	// Same values, public type for custom tools
	deps := &Deps{
		Client:     c,
		Components: components,
		Query:      queryEngine,
		TextQuery:  textQueryEngine,
		Config:     cfg.config,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
