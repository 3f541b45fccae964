package schemainfer

import (
	"regexp"
	"sort"
	"strings"
)

// FieldStat describes one field position across all samples.
type FieldStat struct {
	Path          string   `json:"path"`                  // e.g. "packageDetail.dataStr.head.x", "lcsc.number"
	Type          string   `json:"type"`                  // JSON Schema type, "a|b" for unions
	Frequency     float64  `json:"frequency"`             // Fraction of parent objects containing the field
	Required      bool     `json:"required"`              // Present in every parent object and never null
	Nullable      bool     `json:"nullable"`              // Null at least once
	DistinctCount int      `json:"distinct_count"`        // Distinct non-null values
	Examples      []any    `json:"examples,omitempty"`    // Up to 3 scalar values
	Format        string   `json:"format,omitempty"`      // lcsc_id, uuid, hex_uuid, url, iso8601, enum
	EnumValues    []string `json:"enum_values,omitempty"` // Distinct values when Format is enum
}

const (
	minSamplesForFormat   = 3
	maxEnumDistinctValues = 10
)

// Formats checked in order; the first that matches every value wins.
var formats = []struct {
	name string
	re   *regexp.Regexp
}{
	{"lcsc_id", regexp.MustCompile(`^C[0-9]+$`)},
	{"uuid", regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)},
	{"hex_uuid", regexp.MustCompile(`^[0-9a-f]{32}$`)},
	{"url", regexp.MustCompile(`^https?://`)},
	{"iso8601", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)},
}

// fieldStats flattens the observation tree into a field table, depth-first
// in key order.
func (n *node) fieldStats(maxDepth int) []FieldStat {
	var out []FieldStat
	n.walk("", 0, maxDepth, &out)
	return out
}

func (n *node) walk(path string, depth, maxDepth int, out *[]FieldStat) {
	if n.objects > 0 {
		for _, k := range n.sortedKeys() {
			c := n.props[k]
			p := k
			if path != "" {
				p = path + "." + k
			}
			*out = append(*out, n.stat(p, c))
			c.descend(p, depth+1, maxDepth, out)
		}
	}
}

func (n *node) descend(path string, depth, maxDepth int, out *[]FieldStat) {
	if n.objects == 0 && (n.items == nil || n.items.objects == 0) {
		return
	}
	if depth > maxDepth {
		*out = append(*out, FieldStat{Path: path + " (truncated at depth limit)", Type: "..."})
		return
	}
	if n.objects > 0 {
		n.walk(path, depth, maxDepth, out)
	}
	if n.items != nil && n.items.objects > 0 {
		n.items.walk(path+"[]", depth, maxDepth, out)
	}
}

func (n *node) stat(path string, c *node) FieldStat {
	st := FieldStat{
		Path:          path,
		Type:          strings.Join(c.typeNames(), "|"),
		Required:      n.required(c),
		Nullable:      c.nulls > 0,
		DistinctCount: len(c.distinct),
		Examples:      c.examples,
	}
	if st.Type == "" {
		st.Type = "null"
	}
	if n.objects > 0 {
		st.Frequency = float64(c.seen) / float64(n.objects)
	}
	if st.Type == "string" && len(c.strs) >= minSamplesForFormat {
		st.Format, st.EnumValues = detectFormat(c.strs)
	}
	return st
}

// detectFormat names the common format of values, or reports a small set
// of distinct values as an enum.
func detectFormat(values []string) (string, []string) {
	for _, f := range formats {
		all := true
		for _, v := range values {
			if !f.re.MatchString(v) {
				all = false
				break
			}
		}
		if all {
			return f.name, nil
		}
	}

	distinct := map[string]struct{}{}
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	if len(distinct) > maxEnumDistinctValues || len(distinct) == len(values) {
		return "", nil
	}
	enum := make([]string, 0, len(distinct))
	for v := range distinct {
		enum = append(enum, v)
	}
	sort.Strings(enum)
	return "enum", enum
}
