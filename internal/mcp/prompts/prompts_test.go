package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *sdkmcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleBasePrompt(t *testing.T) {
	req := &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{Name: "tool_guide"}}

	res, err := HandleBasePrompt(&Config{MaxBatchSize: 50})(context.Background(), req)
	require.NoError(t, err)
	lenient := promptText(t, res)
	assert.Contains(t, lenient, "at most 50 part numbers")
	assert.Contains(t, lenient, "enrichment_error")

	res, err = HandleBasePrompt(&Config{StrictEnrichment: true})(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, promptText(t, res), "Strict mode is on")
}

func TestHandleCompareParts(t *testing.T) {
	req := &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{
		Name: "compare_parts",
		Arguments: map[string]string{
			"lcsc_ids":    "c1, C2 C3",
			"requirement": "10k 1% 0603",
		},
	}}

	res, err := HandleCompareParts(&Config{MaxBatchSize: 2})(context.Background(), req)
	require.NoError(t, err)
	text := promptText(t, res)
	assert.Contains(t, text, `easyeda_get_components(lcsc_ids=["C1", "C2", "C3"])`)
	assert.Contains(t, text, "**Requirement**: 10k 1% 0603")
	assert.Contains(t, text, "exceed the batch limit of 2")
}

func TestHandleCompareParts_NoArguments(t *testing.T) {
	req := &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{Name: "compare_parts"}}

	res, err := HandleCompareParts(&Config{MaxBatchSize: 50})(context.Background(), req)
	require.NoError(t, err)
	text := promptText(t, res)
	assert.Contains(t, text, `"C25804", "C25744"`)
	assert.NotContains(t, text, "Requirement")
}
