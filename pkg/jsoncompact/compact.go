// Package jsoncompact shrinks decoded JSON values for display by trimming
// long arrays and strings. EasyEDA CAD payloads carry shape lists with
// thousands of drawing commands; compacting keeps their structure visible
// without the bulk.
package jsoncompact

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Options controls compaction behavior.
type Options struct {
	MaxArrayItems int // Trim arrays to N items (0 = no limit)
	MaxStringLen  int // Truncate strings longer than N bytes (0 = no limit)
	MaxDepth      int // Max recursion depth (0 = unlimited)

	// KeepKeys names object keys whose values are copied without trimming,
	// at any depth.
	KeepKeys []string
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 5
	DefaultMaxStringLen  = 200
	DefaultMaxDepth      = 0 // unlimited
)

// DefaultOptions returns the default compaction settings.
func DefaultOptions() *Options {
	return &Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Stats counts what a compaction removed.
type Stats struct {
	ArraysTrimmed    int `json:"arrays_trimmed"`
	ItemsDropped     int `json:"items_dropped"`
	StringsTruncated int `json:"strings_truncated"`
	DepthCutoffs     int `json:"depth_cutoffs"`
}

// Changed reports whether anything was removed.
func (s Stats) Changed() bool {
	return s.ArraysTrimmed+s.StringsTruncated+s.DepthCutoffs > 0
}

// Compact compacts JSON bytes. It returns an error if data is not valid JSON.
// If opts is nil, DefaultOptions() is used.
func Compact(data []byte, opts *Options) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	compacted, _ := CompactValue(v, opts)
	return json.Marshal(compacted)
}

// CompactValue compacts a decoded JSON value (any type from json.Unmarshal).
// The input is not modified. If opts is nil, DefaultOptions() is used.
func CompactValue(v any, opts *Options) (any, Stats) {
	if opts == nil {
		opts = DefaultOptions()
	}
	c := compactor{opts: opts}
	if len(opts.KeepKeys) > 0 {
		c.keep = make(map[string]bool, len(opts.KeepKeys))
		for _, k := range opts.KeepKeys {
			c.keep[k] = true
		}
	}
	out := c.value(v, 0)
	return out, c.stats
}

type compactor struct {
	opts  *Options
	keep  map[string]bool
	stats Stats
}

func (c *compactor) value(v any, depth int) any {
	if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
		switch v.(type) {
		case []any, map[string]any:
			c.stats.DepthCutoffs++
			return "[max depth]"
		}
	}

	switch val := v.(type) {
	case []any:
		return c.array(val, depth)
	case map[string]any:
		return c.object(val, depth)
	case string:
		return c.string(val)
	default:
		return v
	}
}

func (c *compactor) string(s string) string {
	limit := c.opts.MaxStringLen
	if limit <= 0 || len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	c.stats.StringsTruncated++
	return s[:limit] + fmt.Sprintf("... (%d more bytes)", len(s)-limit)
}

func (c *compactor) array(arr []any, depth int) []any {
	n := len(arr)
	if c.opts.MaxArrayItems > 0 && n > c.opts.MaxArrayItems {
		n = c.opts.MaxArrayItems
	}

	result := make([]any, n, n+1)
	for i := 0; i < n; i++ {
		result[i] = c.value(arr[i], depth+1)
	}
	if dropped := len(arr) - n; dropped > 0 {
		c.stats.ArraysTrimmed++
		c.stats.ItemsDropped += dropped
		result = append(result, fmt.Sprintf("... (%d more items)", dropped))
	}
	return result
}

func (c *compactor) object(obj map[string]any, depth int) map[string]any {
	result := make(map[string]any, len(obj))
	for k, v := range obj {
		if c.keep[k] {
			result[k] = v
			continue
		}
		result[k] = c.value(v, depth+1)
	}
	return result
}
