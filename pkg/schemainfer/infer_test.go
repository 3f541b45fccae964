package schemainfer

import (
	"encoding/json"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, docs ...string) []any {
	t.Helper()
	out := make([]any, len(docs))
	for i, d := range docs {
		require.NoError(t, json.Unmarshal([]byte(d), &out[i]), d)
	}
	return out
}

func prop(t *testing.T, s *jsonschema.Schema, name string) *jsonschema.Schema {
	t.Helper()
	require.NotNil(t, s.Properties)
	p, ok := s.Properties.Get(name)
	require.True(t, ok, "missing property %q", name)
	return p
}

func TestInfer_Empty(t *testing.T) {
	assert.Nil(t, Infer(nil, nil))
}

func TestInferValue_Scalars(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{`1`, "integer"},
		{`1.5`, "number"},
		{`"x"`, "string"},
		{`true`, "boolean"},
		{`null`, "null"},
		{`{}`, "object"},
		{`[]`, "array"},
	}
	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			assert.Equal(t, tt.want, InferValue(decode(t, tt.doc)[0]).Type)
		})
	}
}

func TestInfer_IntegerAndNumberMerge(t *testing.T) {
	res := Infer(decode(t, `{"x":1}`, `{"x":2.5}`), nil)
	assert.Equal(t, "number", prop(t, res.Schema, "x").Type)
	assert.False(t, res.AllMatch)
}

func TestInfer_Required(t *testing.T) {
	res := Infer(decode(t,
		`{"uuid":"a","title":"R1","pins":2}`,
		`{"uuid":"b","pins":null}`,
	), nil)

	assert.Equal(t, "object", res.Schema.Type)
	assert.Equal(t, []string{"uuid"}, res.Schema.Required)
	assert.Equal(t, "string", prop(t, res.Schema, "title").Type)

	pins := prop(t, res.Schema, "pins")
	require.Len(t, pins.AnyOf, 2)
	assert.Equal(t, "integer", pins.AnyOf[0].Type)
	assert.Equal(t, "null", pins.AnyOf[1].Type)
}

func TestInfer_NotStrict(t *testing.T) {
	res := Infer(decode(t, `{"a":1}`), &Options{})
	assert.Empty(t, res.Schema.Required)
}

func TestInfer_ArrayItems(t *testing.T) {
	res := Infer(decode(t, `{"shape":["P~1","W~2"]}`, `{"shape":[]}`), nil)
	shape := prop(t, res.Schema, "shape")
	assert.Equal(t, "array", shape.Type)
	require.NotNil(t, shape.Items)
	assert.Equal(t, "string", shape.Items.Type)
}

func TestInfer_AdditionalProperties(t *testing.T) {
	closed := false
	res := Infer(decode(t, `{"a":{"b":1}}`), &Options{AdditionalProperties: &closed})
	assert.Equal(t, jsonschema.FalseSchema, res.Schema.AdditionalProperties)
	assert.Equal(t, jsonschema.FalseSchema, prop(t, res.Schema, "a").AdditionalProperties)
}

func TestInfer_AllMatch(t *testing.T) {
	same := Infer(decode(t, `{"a":1,"b":"x"}`, `{"b":"y","a":7}`), nil)
	assert.True(t, same.AllMatch)
	assert.Equal(t, 2, same.SampleCount)

	diff := Infer(decode(t, `{"a":1}`, `{"a":"1"}`), nil)
	assert.False(t, diff.AllMatch)
	require.Len(t, prop(t, diff.Schema, "a").AnyOf, 2)
}

func TestInfer_SchemaMarshals(t *testing.T) {
	res := Infer(decode(t, `{"b":1,"a":{"c":[true]}}`), nil)
	data, err := json.Marshal(res.Schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"a": {
				"type": "object",
				"properties": {"c": {"type": "array", "items": {"type": "boolean"}}},
				"required": ["c"]
			},
			"b": {"type": "integer"}
		},
		"required": ["a", "b"]
	}`, string(data))
}
