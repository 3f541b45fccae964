// Package query provides jq-based querying over assembled component records.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/itchyny/gojq"
)

// LabelVariable is bound to the input's label (the LCSC part number) while
// an expression runs, e.g. `{id: $lcsc_id, v: .parameters.Value}`.
const LabelVariable = "$lcsc_id"

const compiledCacheSize = 128

// Engine executes jq expressions. Compiled expressions are cached.
type Engine struct {
	compiled *lru.Cache[string, *gojq.Code]
}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	c, _ := lru.New[string, *gojq.Code](compiledCacheSize)
	return &Engine{compiled: c}
}

// Input is one value to query, identified by Label in results and errors.
type Input struct {
	Label string
	Value any
}

// Options controls result collection.
type Options struct {
	Deduplicate bool
	MaxResults  int // 0 = no limit
}

// Result contains the results of a jq query.
type Result struct {
	Values      []any          `json:"values"`
	Errors      []string       `json:"errors,omitempty"`       // Per-input runtime errors
	RawCount    int            `json:"raw_count"`              // Count before deduplication
	LabelCounts map[string]int `json:"label_counts,omitempty"` // Value count per label
	Truncated   bool           `json:"truncated,omitempty"`    // MaxResults was reached
}

// Compile parses and compiles an expression, reusing a cached compilation
// when one exists.
func (e *Engine) Compile(expression string) (*gojq.Code, error) {
	if code, ok := e.compiled.Get(expression); ok {
		return code, nil
	}

	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q, gojq.WithVariables([]string{LabelVariable}))
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	e.compiled.Add(expression, code)
	return code, nil
}

// ValidateExpression checks that an expression compiles without running it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := e.Compile(expression)
	return err
}

// Run evaluates expression against each input in order. Runtime errors are
// collected per input rather than aborting the run; a canceled context
// stops it.
func (e *Engine) Run(ctx context.Context, expression string, inputs []Input, opts Options) (*Result, error) {
	code, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Values:      make([]any, 0),
		LabelCounts: make(map[string]int),
	}
	seen := make(map[string]bool)
	seenErrors := make(map[string]bool)

	for i, in := range inputs {
		label := in.Label
		if label == "" {
			label = fmt.Sprintf("input[%d]", i)
		}

		iter := code.RunWithContext(ctx, in.Value, label)
		for {
			if opts.MaxResults > 0 && len(result.Values) >= opts.MaxResults {
				result.Truncated = true
				return result, nil
			}

			v, ok := iter.Next()
			if !ok {
				break
			}

			if err, isErr := v.(error); isErr {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				msg := formatJQError(label, err)
				if !seenErrors[msg] {
					result.Errors = append(result.Errors, msg)
					seenErrors[msg] = true
				}
				continue
			}

			if v == nil {
				continue
			}

			result.RawCount++
			result.LabelCounts[label]++

			if opts.Deduplicate {
				key := valueKey(v)
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			result.Values = append(result.Values, v)
		}
	}

	return result, nil
}

// Normalize converts v into the plain JSON value types jq operates on
// (map[string]any, []any, float64, string, bool, nil) via a JSON round trip.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding query input: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding query input: %w", err)
	}
	return out, nil
}

// formatJQError adds a hint to common runtime errors. gojq reports these as
// plain errors, so the hints are keyed on message text.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist for this part)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

// valueKey creates a string key for deduplication.
func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case float64:
		return fmt.Sprintf("n:%v", val)
	case int:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}
