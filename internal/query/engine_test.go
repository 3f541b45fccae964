package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, v any) any {
	t.Helper()
	out, err := Normalize(v)
	require.NoError(t, err)
	return out
}

func resistors(t *testing.T) []Input {
	return []Input{
		{Label: "C25804", Value: record(t, map[string]any{
			"lcsc_id":    "C25804",
			"parameters": map[string]string{"Value": "10kΩ", "Package": "0603", "Tolerance": "±1%"},
		})},
		{Label: "C25744", Value: record(t, map[string]any{
			"lcsc_id":    "C25744",
			"parameters": map[string]string{"Value": "10kΩ", "Package": "0402", "Tolerance": "±1%"},
		})},
		{Label: "C23138", Value: record(t, map[string]any{
			"lcsc_id":    "C23138",
			"parameters": map[string]string{"Value": "330Ω", "Package": "0805"},
		})},
	}
}

func TestEngine_Run_Path(t *testing.T) {
	e := NewEngine()

	res, err := e.Run(context.Background(), ".parameters.Package", resistors(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, []any{"0603", "0402", "0805"}, res.Values)
	assert.Equal(t, 3, res.RawCount)
	assert.Empty(t, res.Errors)
	assert.False(t, res.Truncated)
}

func TestEngine_Run_Deduplicate(t *testing.T) {
	e := NewEngine()

	res, err := e.Run(context.Background(), ".parameters.Value", resistors(t), Options{Deduplicate: true})
	require.NoError(t, err)
	assert.Equal(t, []any{"10kΩ", "330Ω"}, res.Values)
	assert.Equal(t, 3, res.RawCount)
}

func TestEngine_Run_MaxResults(t *testing.T) {
	e := NewEngine()

	res, err := e.Run(context.Background(), ".parameters | keys[]", resistors(t), Options{MaxResults: 4})
	require.NoError(t, err)
	assert.Len(t, res.Values, 4)
	assert.True(t, res.Truncated)
}

func TestEngine_Run_LabelVariable(t *testing.T) {
	e := NewEngine()

	res, err := e.Run(context.Background(), `select(.parameters.Package == "0402") | $lcsc_id`, resistors(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, []any{"C25744"}, res.Values)
	assert.Equal(t, map[string]int{"C25744": 1}, res.LabelCounts)
}

func TestEngine_Run_NullsSkipped(t *testing.T) {
	e := NewEngine()

	res, err := e.Run(context.Background(), ".parameters.Tolerance", resistors(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, []any{"±1%", "±1%"}, res.Values)
}

func TestEngine_Run_RuntimeErrorsCollected(t *testing.T) {
	e := NewEngine()
	inputs := []Input{
		{Label: "C1", Value: record(t, map[string]any{"shape": []string{"a"}})},
		{Label: "C2", Value: record(t, map[string]any{"shape": nil})},
	}

	res, err := e.Run(context.Background(), ".shape[]", inputs, Options{})
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, res.Values)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "C2: ")
	assert.Contains(t, res.Errors[0], "may not exist")
}

func TestEngine_Run_DefaultLabels(t *testing.T) {
	e := NewEngine()

	res, err := e.Run(context.Background(), "$lcsc_id", []Input{{Value: 1.0}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []any{"input[0]"}, res.Values)
}

func TestEngine_Run_Halt(t *testing.T) {
	e := NewEngine()

	res, err := e.Run(context.Background(), `"stop" | halt_error`, []Input{{Label: "C1", Value: nil}}, Options{})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "C1: query halted with: stop")
}

func TestEngine_Run_Canceled(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, "range(1e9)", []Input{{Label: "C1", Value: nil}}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ValidateExpression(t *testing.T) {
	e := NewEngine()

	assert.NoError(t, e.ValidateExpression(".parameters | to_entries[] | select(.value != \"\")"))
	assert.NoError(t, e.ValidateExpression("$lcsc_id"))

	err := e.ValidateExpression(".parameters[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")

	err = e.ValidateExpression("$undefined")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile")
}

func TestEngine_CompileCaches(t *testing.T) {
	e := NewEngine()

	first, err := e.Compile(".a")
	require.NoError(t, err)
	second, err := e.Compile(".a")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestNormalize(t *testing.T) {
	out, err := Normalize(struct {
		Params map[string]string `json:"params"`
		N      int               `json:"n"`
	}{Params: map[string]string{"a": "b"}, N: 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"params": map[string]any{"a": "b"}, "n": float64(3)}, out)
}
