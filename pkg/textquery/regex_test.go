package textquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryRegex(t *testing.T) {
	t.Run("full match", func(t *testing.T) {
		result, err := QueryRegex(productHTML, `/category/\d+\.html`, 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"/category/308.html", "/category/439.html"}, result.Values)
		assert.Equal(t, ModeRegex, result.Mode)
	})

	t.Run("first capture group", func(t *testing.T) {
		result, err := QueryRegex(productHTML, `/category/(\d+)\.html`, 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"308", "439"}, result.Values)
	})

	t.Run("script source", func(t *testing.T) {
		result, err := QueryRegex(productHTML, `\}\}\(([^)]*)\)\);`, 0)
		require.NoError(t, err)
		assert.Equal(t, []any{`"Resistance","10kΩ"`}, result.Values)
	})

	t.Run("max results", func(t *testing.T) {
		result, err := QueryRegex(productHTML, `<td>`, 2)
		require.NoError(t, err)
		assert.Len(t, result.Values, 2)
		assert.True(t, result.Truncated)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := QueryRegex(productHTML, `(unclosed`, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid regex")
	})
}
