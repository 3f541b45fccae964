package jsliteral

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_StringForm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string", `"100k"`, "100k"},
		{"integer keeps literal", `100`, "100"},
		{"float keeps literal", `0.10`, "0.10"},
		{"exponent keeps literal", `1e3`, "1e3"},
		{"plus sign dropped", `+5`, "5"},
		{"true", `true`, "true"},
		{"false", `false`, "false"},
		{"null is empty", `null`, ""},
		{"array is compact json", `[1, 'a']`, `[1,"a"]`},
		{"object keeps order", `{b:1, a:2}`, `{"b":1,"a":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestValue_AccessorsOnWrongKind(t *testing.T) {
	v := StringValue("x")

	_, ok := v.Num()
	assert.False(t, ok)
	_, ok = v.Bool()
	assert.False(t, ok)
	_, ok = v.Get("a")
	assert.False(t, ok)
	_, ok = v.Index(0)
	assert.False(t, ok)
	assert.Nil(t, v.Keys())
	assert.Nil(t, v.Items())
	assert.Equal(t, 0, v.Len())
}

func TestValue_IndexBounds(t *testing.T) {
	v := ArrayValue(StringValue("a"))

	_, ok := v.Index(-1)
	assert.False(t, ok)
	_, ok = v.Index(1)
	assert.False(t, ok)

	item, ok := v.Index(0)
	require.True(t, ok)
	assert.Equal(t, "a", item.String())
}

func TestValue_MarshalJSONIsValidJSON(t *testing.T) {
	v, err := Parse(`{name:'a"b', nested:{list:[1,2.5,true,null]}, tab:"x\ty"}`)
	require.NoError(t, err)

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, v.Interface(), decoded)
}

func TestObjectValue_DuplicateKeys(t *testing.T) {
	v := ObjectValue(
		Member{Key: "a", Value: StringValue("1")},
		Member{Key: "b", Value: StringValue("2")},
		Member{Key: "a", Value: StringValue("3")},
	)
	assert.Equal(t, []string{"a", "b"}, v.Keys())
	a, _ := v.Get("a")
	assert.Equal(t, "3", a.String())
}

func TestQuote_RoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		`with "quotes" and \backslash`,
		"control\x01char",
		"line\nbreak",
		"<tag> & amp",
		"Ω 10kΩ ±1%",
		"sep\u2028arator",
	}

	for _, in := range inputs {
		quoted := Quote(in)

		var fromJSON string
		require.NoError(t, json.Unmarshal([]byte(quoted), &fromJSON), quoted)
		assert.Equal(t, in, fromJSON)

		v, err := Parse(quoted)
		require.NoError(t, err)
		s, _ := v.Str()
		assert.Equal(t, in, s)
	}
}

func TestQuote_DoesNotEscapeHTML(t *testing.T) {
	assert.Equal(t, `"<a&b>"`, Quote("<a&b>"))
}
