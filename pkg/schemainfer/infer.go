// Package schemainfer infers a JSON Schema (Draft 2020-12) and per-field
// statistics from decoded JSON values such as EasyEDA CAD records.
//
// All samples are observed in one pass into a tree of field observations;
// the schema and the field table are both rendered from that tree.
package schemainfer

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/invopop/jsonschema"
)

// Result contains a JSON Schema inferred from sample values.
type Result struct {
	Schema      *jsonschema.Schema `json:"schema"`
	SampleCount int                `json:"sample_count"`
	// AllMatch is true if every sample alone would infer the same schema.
	AllMatch bool        `json:"all_match"`
	Fields   []FieldStat `json:"fields,omitempty"`
}

// Options controls inference.
type Options struct {
	// StrictRequired marks a property required when it is present and
	// non-null in every object observed at its position.
	StrictRequired bool
	// AdditionalProperties sets additionalProperties on object schemas when
	// non-nil.
	AdditionalProperties *bool
	// FieldStats also computes the flat field table.
	FieldStats bool
	// MaxDepth limits the field table depth. Zero means DefaultMaxDepth.
	MaxDepth int
}

// DefaultMaxDepth is the default field table depth.
const DefaultMaxDepth = 5

// DefaultOptions returns the default inference options.
func DefaultOptions() *Options {
	return &Options{StrictRequired: true}
}

// Infer builds a merged schema from samples. It returns nil when there are
// no samples.
func Infer(samples []any, opts *Options) *Result {
	if len(samples) == 0 {
		return nil
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	root := newNode()
	for _, s := range samples {
		root.observe(s)
	}

	res := &Result{
		Schema:      root.schema(opts),
		SampleCount: len(samples),
		AllMatch:    allMatch(samples, opts),
	}
	if opts.FieldStats {
		depth := opts.MaxDepth
		if depth <= 0 {
			depth = DefaultMaxDepth
		}
		res.Fields = root.fieldStats(depth)
	}
	return res
}

// InferValue is Infer on a single value, returning only the schema.
func InferValue(v any) *jsonschema.Schema {
	return Infer([]any{v}, DefaultOptions()).Schema
}

func allMatch(samples []any, opts *Options) bool {
	if len(samples) < 2 {
		return true
	}
	var first []byte
	for i, s := range samples {
		n := newNode()
		n.observe(s)
		b, _ := json.Marshal(n.schema(opts))
		if i == 0 {
			first = b
		} else if string(b) != string(first) {
			return false
		}
	}
	return true
}

// node accumulates observations of one position in the sample tree.
type node struct {
	seen    int // times the position was present
	nulls   int
	objects int // times the value was an object
	types   map[string]int

	props map[string]*node
	items *node

	distinct map[string]struct{}
	examples []any
	strs     []string
}

const (
	maxExamples    = 3
	maxStringsKept = 200
)

func newNode() *node {
	return &node{types: map[string]int{}}
}

func (n *node) child(key string) *node {
	if n.props == nil {
		n.props = map[string]*node{}
	}
	c, ok := n.props[key]
	if !ok {
		c = newNode()
		n.props[key] = c
	}
	return c
}

func (n *node) observe(v any) {
	n.seen++
	switch val := v.(type) {
	case nil:
		n.nulls++
		n.types["null"]++
		return
	case bool:
		n.types["boolean"]++
	case float64:
		if math.Trunc(val) == val && !math.IsInf(val, 0) {
			n.types["integer"]++
		} else {
			n.types["number"]++
		}
	case json.Number:
		if _, err := val.Int64(); err == nil {
			n.types["integer"]++
		} else {
			n.types["number"]++
		}
	case int, int32, int64:
		n.types["integer"]++
	case string:
		n.types["string"]++
		if len(n.strs) < maxStringsKept {
			n.strs = append(n.strs, val)
		}
	case map[string]any:
		n.types["object"]++
		n.objects++
		for k, fv := range val {
			n.child(k).observe(fv)
		}
		n.distinctCount(val, false)
		return
	case []any:
		n.types["array"]++
		if n.items == nil {
			n.items = newNode()
		}
		for _, item := range val {
			n.items.observe(item)
		}
		n.distinctCount(val, false)
		return
	default:
		n.types["unknown"]++
	}
	n.distinctCount(v, true)
}

func (n *node) distinctCount(v any, example bool) {
	if n.distinct == nil {
		n.distinct = map[string]struct{}{}
	}
	key := fmt.Sprintf("%v", v)
	if _, ok := n.distinct[key]; ok {
		return
	}
	n.distinct[key] = struct{}{}
	if example && len(n.examples) < maxExamples {
		n.examples = append(n.examples, v)
	}
}

// typeNames returns the observed non-null types, sorted. Integers merge
// into number when both were seen.
func (n *node) typeNames() []string {
	names := make([]string, 0, len(n.types))
	for t := range n.types {
		if t == "null" || t == "unknown" {
			continue
		}
		if t == "integer" && n.types["number"] > 0 {
			continue
		}
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}

func (n *node) sortedKeys() []string {
	keys := make([]string, 0, len(n.props))
	for k := range n.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// required reports whether child c of n was present and non-null in every
// object observed at n.
func (n *node) required(c *node) bool {
	return n.objects > 0 && c.seen == n.objects && c.nulls == 0
}

func (n *node) schema(opts *Options) *jsonschema.Schema {
	names := n.typeNames()
	if n.nulls > 0 && len(names) > 0 {
		names = append(names, "null")
	}

	switch len(names) {
	case 0:
		if n.nulls > 0 {
			return &jsonschema.Schema{Type: "null"}
		}
		return &jsonschema.Schema{}
	case 1:
		return n.typedSchema(names[0], opts)
	}

	anyOf := make([]*jsonschema.Schema, 0, len(names))
	for _, t := range names {
		anyOf = append(anyOf, n.typedSchema(t, opts))
	}
	return &jsonschema.Schema{AnyOf: anyOf}
}

func (n *node) typedSchema(t string, opts *Options) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: t}
	switch t {
	case "object":
		s.Properties = jsonschema.NewProperties()
		var required []string
		for _, k := range n.sortedKeys() {
			c := n.props[k]
			s.Properties.Set(k, c.schema(opts))
			if opts.StrictRequired && n.required(c) {
				required = append(required, k)
			}
		}
		s.Required = required
		if opts.AdditionalProperties != nil {
			if *opts.AdditionalProperties {
				s.AdditionalProperties = jsonschema.TrueSchema
			} else {
				s.AdditionalProperties = jsonschema.FalseSchema
			}
		}
	case "array":
		if n.items != nil && n.items.seen > 0 {
			s.Items = n.items.schema(opts)
		}
	}
	return s
}
