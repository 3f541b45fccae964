// Package prompts contains MCP prompt implementations for EasyEDA part
// lookups.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	StrictEnrichment bool
	MaxBatchSize     int
}
