package schemainfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsByPath(t *testing.T, opts *Options, docs ...string) map[string]FieldStat {
	t.Helper()
	if opts == nil {
		opts = DefaultOptions()
	}
	opts.FieldStats = true
	res := Infer(decode(t, docs...), opts)
	out := make(map[string]FieldStat, len(res.Fields))
	for _, f := range res.Fields {
		out[f.Path] = f
	}
	return out
}

func TestFieldStats_Frequency(t *testing.T) {
	stats := statsByPath(t, nil,
		`{"lcsc":{"number":"C1"},"title":"A"}`,
		`{"lcsc":{"number":"C2"},"title":null}`,
		`{"lcsc":{"number":"C3"}}`,
		`{"lcsc":{"number":"C4"},"title":"A"}`,
	)

	num := stats["lcsc.number"]
	assert.Equal(t, "string", num.Type)
	assert.Equal(t, 1.0, num.Frequency)
	assert.True(t, num.Required)
	assert.Equal(t, 4, num.DistinctCount)
	assert.Len(t, num.Examples, 3)
	assert.Equal(t, "lcsc_id", num.Format)

	title := stats["title"]
	assert.Equal(t, 0.75, title.Frequency)
	assert.False(t, title.Required)
	assert.True(t, title.Nullable)
	assert.Equal(t, 1, title.DistinctCount)
}

func TestFieldStats_ArrayOfObjects(t *testing.T) {
	stats := statsByPath(t, nil, `{"pins":[{"n":1,"name":"A"},{"n":2}]}`)

	require.Contains(t, stats, "pins")
	assert.Equal(t, "array", stats["pins"].Type)
	assert.Equal(t, 1.0, stats["pins[].n"].Frequency)
	assert.Equal(t, 0.5, stats["pins[].name"].Frequency)
}

func TestFieldStats_DepthLimit(t *testing.T) {
	stats := statsByPath(t, &Options{MaxDepth: 1}, `{"a":{"b":{"c":1}}}`)

	assert.Contains(t, stats, "a")
	assert.Contains(t, stats, "a.b")
	assert.Contains(t, stats, "a.b (truncated at depth limit)")
	assert.NotContains(t, stats, "a.b.c")
}

func TestFieldStats_NotRequested(t *testing.T) {
	res := Infer(decode(t, `{"a":1}`), nil)
	assert.Empty(t, res.Fields)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		format   string
		enumVals []string
	}{
		{"lcsc", []string{"C25804", "C1", "C99"}, "lcsc_id", nil},
		{"uuid", []string{
			"123e4567-e89b-12d3-a456-426614174000",
			"123e4567-e89b-12d3-a456-426614174001",
			"123e4567-e89b-12d3-a456-426614174002",
		}, "uuid", nil},
		{"hex uuid", []string{
			"8d8b7f3bb4ec4ed99b1f1b6a6d8b2c10",
			"0c4e8a2f1d3b4c5a9e7f6a5b4c3d2e1f",
			"ffffffffffffffffffffffffffffffff",
		}, "hex_uuid", nil},
		{"url", []string{"https://a", "http://b", "https://c"}, "url", nil},
		{"date", []string{"2024-01-02", "2024-01-03T10:00:00Z", "2025-12-31"}, "iso8601", nil},
		{"enum", []string{"smd", "tht", "smd", "smd"}, "enum", []string{"smd", "tht"}},
		{"all distinct", []string{"x", "y", "z"}, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, enum := detectFormat(tt.values)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.enumVals, enum)
		})
	}
}
