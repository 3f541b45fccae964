package productpage

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/easyeda-mcp/pkg/jsliteral"
)

// nuxtScript frames a skeleton and argument literals the way Nuxt emits them.
func nuxtScript(skeleton string, args ...string) string {
	names := make([]string, len(args))
	for i := range args {
		names[i] = fmt.Sprintf("p%d", i)
	}
	return "window.__NUXT__=(function(" + strings.Join(names, ",") + "){return " +
		skeleton + "}(" + strings.Join(args, ",") + "));"
}

// placeholderFixture builds a skeleton {k0:a,k1:b,...} and n distinct
// quoted string arguments.
func placeholderFixture(n int, token func(i int) string) (skeleton string, args []string) {
	fields := make([]string, n)
	args = make([]string, n)
	for i := 0; i < n; i++ {
		fields[i] = fmt.Sprintf("k%d:%s", i, token(i))
		args[i] = fmt.Sprintf(`"value-%d"`, i)
	}
	return "{" + strings.Join(fields, ",") + "}", args
}

func letterToken(i int) string {
	name, _ := PlaceholderName(i)
	return string(name)
}

func TestReconstruct_QuotedPlaceholders(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"array argument", `var x={"a":":a","b":":b"}(["R1","100k"]));`},
		{"argument list", `var x={"a":":a","b":":b"}("R1","100k"));`},
		{"single quotes", `var x={a:':a', b : ':b'}("R1","100k"));`},
		{"bare tokens", `var x={"a":a,"b":b}("R1","100k"));`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Reconstruct(tt.script)
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"a": "R1", "b": "100k"}, root.Interface())
		})
	}
}

func TestReconstruct_QuotedPlaceholderKeysUntouched(t *testing.T) {
	root, err := Reconstruct(`var x={":a":a,list:[":a"]}("R1"));`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{":a": "R1", "list": []any{":a"}}, root.Interface())
}

func TestReconstruct_CommentsSkipped(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"block comment with apostrophe", "window.__NUXT__={/* it's */v:a}(\"X\"));"},
		{"line comment with quote", "window.__NUXT__={// \"open\n v:a}(\"X\"));"},
		{"placeholder inside comment", "window.__NUXT__={/* :a */v:a}(\"X\"));"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Reconstruct(tt.script)
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"v": "X"}, root.Interface())
		})
	}
}

func TestParseArguments(t *testing.T) {
	spread, err := ParseArguments(`["R1","100k"]`)
	require.NoError(t, err)
	require.Len(t, spread, 2)
	assert.Equal(t, "100k", spread[1].String())

	list, err := ParseArguments(`["R1"],"100k"`)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, jsliteral.Array, list[0].Kind())
}

func TestReconstruct_NuxtFunctionWrapper(t *testing.T) {
	script := nuxtScript(`{a:a,b:b}`, `"R1"`, `"100k"`)

	root, err := Reconstruct(script)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "R1", "b": "100k"}, root.Interface())
}

func TestReconstruct_Deterministic(t *testing.T) {
	skeleton, args := placeholderFixture(20, letterToken)
	script := nuxtScript(skeleton, args...)

	first, err := Reconstruct(script)
	require.NoError(t, err)
	second, err := Reconstruct(script)
	require.NoError(t, err)

	firstJSON, err := first.MarshalJSON()
	require.NoError(t, err)
	secondJSON, err := second.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestReconstruct_RoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 26, 27, 51, 52} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			skeleton, args := placeholderFixture(n, letterToken)

			root, err := Reconstruct(nuxtScript(skeleton, args...))
			require.NoError(t, err)
			require.Equal(t, n, root.Len())

			for i := 0; i < n; i++ {
				field, ok := root.Get(fmt.Sprintf("k%d", i))
				require.True(t, ok)
				assert.Equal(t, fmt.Sprintf("value-%d", i), field.String())
			}
		})
	}
}

// The 53rd argument has no single-letter placeholder. Its token (the next
// minifier name, "aa") is left in place and the skeleton fails to parse.
func TestReconstruct_53rdPlaceholderIsUnresolved(t *testing.T) {
	skeleton, args := placeholderFixture(53, func(i int) string {
		if i == 52 {
			return "aa"
		}
		return letterToken(i)
	})

	_, err := Reconstruct(nuxtScript(skeleton, args...))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedPayload))

	var synErr *jsliteral.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Contains(t, synErr.Msg, `"aa"`)
}

func TestReconstruct_LastSplitPoint(t *testing.T) {
	// "}(" appears inside the skeleton before the real argument list.
	script := `window.__NUXT__={note:"see f}(x)",nested:{fn:"}("},v:a}("real"));`

	root, err := Reconstruct(script)
	require.NoError(t, err)

	v, ok := root.Get("v")
	require.True(t, ok)
	assert.Equal(t, "real", v.String())

	note, _ := root.Get("note")
	assert.Equal(t, "see f}(x)", note.String())
}

func TestReconstruct_NonStringArgumentsBecomeStrings(t *testing.T) {
	script := nuxtScript(`{n:a,f:b,t:c,z:d,o:e}`, `75`, `0.5`, `true`, `null`, `{x:1}`)

	root, err := Reconstruct(script)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"n": "75",
		"f": "0.5",
		"t": "true",
		"z": "",
		"o": `{"x":1}`,
	}, root.Interface())
}

func TestReconstruct_PlaceholdersInsideStringsUntouched(t *testing.T) {
	script := nuxtScript(`{url:"http://a.b/:a",time:'12:a',v:a}`, `"X"`)

	root, err := Reconstruct(script)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"url":  "http://a.b/:a",
		"time": "12:a",
		"v":    "X",
	}, root.Interface())
}

func TestReconstruct_ValuesContainingTokensNotRescanned(t *testing.T) {
	// a's value contains ":b"; it must survive b's substitution pass.
	script := nuxtScript(`{x:a,y:b}`, `"ratio :b"`, `"B"`)

	root, err := Reconstruct(script)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": "ratio :b", "y": "B"}, root.Interface())

	// A value that is itself a quoted placeholder is not substituted again.
	root, err = Reconstruct(nuxtScript(`{x:a,y:b}`, `":b"`, `"B"`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": ":b", "y": "B"}, root.Interface())
}

func TestReconstruct_LongerIdentifiersAreNotTokens(t *testing.T) {
	script := nuxtScript(`{x:a,y:true,z:ab}`, `"A"`)

	_, err := Reconstruct(script)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedPayload))
}

func TestReconstruct_QuotesInValues(t *testing.T) {
	script := nuxtScript(`{d:a}`, `'2.54mm "pitch" \\ row'`)

	root, err := Reconstruct(script)
	require.NoError(t, err)
	d, _ := root.Get("d")
	assert.Equal(t, `2.54mm "pitch" \ row`, d.String())
}

func TestReconstruct_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"no brace", `window.__NUXT__=init("x"));`},
		{"no invocation close", `window.__NUXT__={a:a}("x");`},
		{"no argument list", `window.__NUXT__=({a:1}));`},
		{"bad arguments", `window.__NUXT__={a:a}("x" "y"));`},
		{"bad skeleton", `window.__NUXT__={a:a,,}("x"));`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reconstruct(tt.script)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedPayload), err.Error())
			assert.False(t, errors.Is(err, ErrNotFound))

			var extractErr *ExtractError
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, StageReconstruct, extractErr.Stage)
		})
	}
}

func TestSplitPayload(t *testing.T) {
	skeleton, args, err := SplitPayload("window.__NUXT__=(function(a){return {x:a}}(\"v\"));\n")
	require.NoError(t, err)
	assert.Equal(t, "{x:a}", skeleton)
	assert.Equal(t, `"v"`, args)
}

func TestSubstitute_IgnoresValuesBeyondAlphabet(t *testing.T) {
	values := make([]jsliteral.Value, 60)
	for i := range values {
		values[i] = jsliteral.StringValue(fmt.Sprintf("v%d", i))
	}

	out := Substitute(`{first:a,last:Z,next:aa}`, values)
	assert.Equal(t, `{first:"v0",last:"v51",next:aa}`, out)
}

func TestPlaceholderName(t *testing.T) {
	first, ok := PlaceholderName(0)
	require.True(t, ok)
	assert.Equal(t, byte('a'), first)

	upper, ok := PlaceholderName(26)
	require.True(t, ok)
	assert.Equal(t, byte('A'), upper)

	last, ok := PlaceholderName(51)
	require.True(t, ok)
	assert.Equal(t, byte('Z'), last)

	_, ok = PlaceholderName(52)
	assert.False(t, ok)
}
