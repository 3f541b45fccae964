package jsliteral

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_StrictJSON(t *testing.T) {
	v, err := Parse(`{"name": "R1", "count": 3, "ok": true, "none": null, "tags": ["a", "b"]}`)
	require.NoError(t, err)
	require.Equal(t, Object, v.Kind())
	assert.Equal(t, []string{"name", "count", "ok", "none", "tags"}, v.Keys())

	name, ok := v.Get("name")
	require.True(t, ok)
	s, ok := name.Str()
	require.True(t, ok)
	assert.Equal(t, "R1", s)

	count, _ := v.Get("count")
	n, ok := count.Num()
	require.True(t, ok)
	assert.Equal(t, float64(3), n)

	none, _ := v.Get("none")
	assert.True(t, none.IsNull())

	tags, _ := v.Get("tags")
	assert.Equal(t, 2, tags.Len())
}

func TestParse_RelaxedSyntax(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"unquoted keys", `{layout:"default",data:1}`, map[string]any{"layout": "default", "data": float64(1)}},
		{"single quotes", `{'a':'it\'s'}`, map[string]any{"a": "it's"}},
		{"trailing comma object", `{a:1,}`, map[string]any{"a": float64(1)}},
		{"trailing comma array", `[1,2,]`, []any{float64(1), float64(2)}},
		{"line comment", "{a:1 // note\n}", map[string]any{"a": float64(1)}},
		{"block comment", `[/* x */ true]`, []any{true}},
		{"void 0", `{x:void 0}`, map[string]any{"x": nil}},
		{"undefined", `[undefined]`, []any{nil}},
		{"dollar and underscore keys", `{$id:1,_v:2}`, map[string]any{"$id": float64(1), "_v": float64(2)}},
		{"numeric key", `{1:"one"}`, map[string]any{"1": "one"}},
		{"hex number", `[0x1F]`, []any{float64(31)}},
		{"leading dot", `[.5]`, []any{0.5}},
		{"plus sign", `[+2]`, []any{float64(2)}},
		{"unicode escape", `["\u00b5F"]`, []any{"µF"}},
		{"surrogate pair", `["\ud83d\ude00"]`, []any{"😀"}},
		{"hex escape", `['\x41']`, []any{"A"}},
		{"empty containers", `{a:{},b:[]}`, map[string]any{"a": map[string]any{}, "b": []any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"bare identifier", `{a:b}`},
		{"unterminated object", `{a:1`},
		{"unterminated array", `[1,2`},
		{"unterminated string", `{"a":"x}`},
		{"missing colon", `{a 1}`},
		{"double comma", `[1,,2]`},
		{"trailing garbage", `{a:1} x`},
		{"bad exponent", `[1e]`},
		{"void without operand", `[void]`},
		{"identifier in number", `[12px]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var synErr *SyntaxError
			assert.True(t, errors.As(err, &synErr))
		})
	}
}

func TestParse_UnresolvedIdentifierReportsOffset(t *testing.T) {
	_, err := Parse(`{a:"x",b:aa}`)
	require.Error(t, err)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 9, synErr.Offset)
	assert.Contains(t, synErr.Msg, `"aa"`)
}

func TestParse_DuplicateKeysLastWins(t *testing.T) {
	v, err := Parse(`{a:1,b:2,a:3}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Keys())

	a, _ := v.Get("a")
	n, _ := a.Num()
	assert.Equal(t, float64(3), n)
}

func TestParse_SpecialNumbers(t *testing.T) {
	v, err := Parse(`[NaN, Infinity, -Infinity]`)
	require.NoError(t, err)

	nan, _ := v.Index(0)
	f, _ := nan.Num()
	assert.True(t, math.IsNaN(f))

	inf, _ := v.Index(2)
	f, _ = inf.Num()
	assert.True(t, math.IsInf(f, -1))
	assert.Equal(t, "-Infinity", inf.String())
}

func TestParse_DepthLimit(t *testing.T) {
	deep := ""
	for i := 0; i <= MaxDepth; i++ {
		deep += "["
	}
	_, err := Parse(deep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting")
}
