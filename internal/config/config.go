// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/easyeda-mcp/pkg/client"
	"github.com/usestring/easyeda-mcp/pkg/jsoncompact"
	"github.com/usestring/easyeda-mcp/pkg/productpage"
)

// Tool defaults
const (
	DefaultQueryLimitValue    = 50
	DefaultModelMaxBytesValue = 1_000_000
	MaxBatchSizeValue         = 50
)

// Config holds all configuration for the MCP server.
type Config struct {
	APIBaseURL        string        // EASYEDA_API_BASE_URL, default "https://easyeda.com"
	ModelBaseURL      string        // EASYEDA_MODEL_BASE_URL, default "https://easyeda.com"
	ProductBaseURL    string        // LCSC_PRODUCT_BASE_URL, default "https://www.lcsc.com"
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 15000ms (15s)
	UserAgent         string        // HTTP_USER_AGENT, default "easyeda-mcp"
	FetchWorkers      int           // FETCH_WORKERS, default 4
	CacheMaxItems     int           // COMPONENT_CACHE_MAX_ITEMS, default 256
	CacheTTL          time.Duration // COMPONENT_CACHE_TTL_MS, default 0 (no expiry)

	// Enrichment from the LCSC product page
	StrictEnrichment   bool   // STRICT_ENRICHMENT, default false
	BreadcrumbSelector string // BREADCRUMB_SELECTOR, default ".v-breadcrumbs__item"
	StateMarker        string // STATE_SCRIPT_MARKER, default "window.__NUXT__"

	// Compaction defaults for CAD payloads
	CompactMaxArrayItems int // COMPACT_MAX_ARRAY_ITEMS
	CompactMaxStringLen  int // COMPACT_MAX_STRING_LEN
	CompactMaxDepth      int // COMPACT_MAX_DEPTH

	// Tool output limits
	DefaultQueryLimit    int // DEFAULT_QUERY_LIMIT, default 50
	ModelMaxBytesDefault int // MODEL_MAX_BYTES_DEFAULT, default 1_000_000
	MaxBatchSize         int // MAX_BATCH_SIZE, default 50

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		APIBaseURL:        getEnvString("EASYEDA_API_BASE_URL", client.DefaultAPIBaseURL),
		ModelBaseURL:      getEnvString("EASYEDA_MODEL_BASE_URL", client.DefaultModelBaseURL),
		ProductBaseURL:    getEnvString("LCSC_PRODUCT_BASE_URL", client.DefaultProductBaseURL),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 15000),
		UserAgent:         getEnvString("HTTP_USER_AGENT", client.DefaultUserAgent),
		FetchWorkers:      getEnvInt("FETCH_WORKERS", 4),
		CacheMaxItems:     getEnvInt("COMPONENT_CACHE_MAX_ITEMS", 256),
		CacheTTL:          getEnvDurationMs("COMPONENT_CACHE_TTL_MS", 0),

		StrictEnrichment:   getEnvBool("STRICT_ENRICHMENT", false),
		BreadcrumbSelector: getEnvString("BREADCRUMB_SELECTOR", productpage.BreadcrumbSelector),
		StateMarker:        getEnvString("STATE_SCRIPT_MARKER", productpage.NuxtStateMarker),

		CompactMaxArrayItems: getEnvInt("COMPACT_MAX_ARRAY_ITEMS", jsoncompact.DefaultMaxArrayItems),
		CompactMaxStringLen:  getEnvInt("COMPACT_MAX_STRING_LEN", jsoncompact.DefaultMaxStringLen),
		CompactMaxDepth:      getEnvInt("COMPACT_MAX_DEPTH", jsoncompact.DefaultMaxDepth),

		DefaultQueryLimit:    getEnvInt("DEFAULT_QUERY_LIMIT", DefaultQueryLimitValue),
		ModelMaxBytesDefault: getEnvInt("MODEL_MAX_BYTES_DEFAULT", DefaultModelMaxBytesValue),
		MaxBatchSize:         getEnvInt("MAX_BATCH_SIZE", MaxBatchSizeValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// ClientOptions returns the HTTP client options implied by c.
func (c *Config) ClientOptions() []client.Option {
	return []client.Option{
		client.WithAPIBaseURL(c.APIBaseURL),
		client.WithModelBaseURL(c.ModelBaseURL),
		client.WithProductBaseURL(c.ProductBaseURL),
		client.WithUserAgent(c.UserAgent),
	}
}

// Extractor returns a product page extractor using the configured layout.
func (c *Config) Extractor() *productpage.Extractor {
	return &productpage.Extractor{
		Marker:             c.StateMarker,
		BreadcrumbSelector: c.BreadcrumbSelector,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
