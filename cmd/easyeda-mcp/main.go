package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/easyeda-mcp/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables:
	// - EASYEDA_API_BASE_URL, LCSC_PRODUCT_BASE_URL: upstream endpoints
	// - HTTP_CLIENT_TIMEOUT_MS: per-request timeout (default 15000)
	// - STRICT_ENRICHMENT: fail lookups whose product page cannot be decoded
	// - LOG_LEVEL, LOG_FORMAT, LOG_FILE: logging (stderr by default)
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer(nil)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting easyeda MCP server on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
