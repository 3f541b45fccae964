package textquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productHTML = []byte(`<html><body>
	<ul>
		<li class="v-breadcrumbs__item"><a href="/">Home</a></li>
		<li class="v-breadcrumbs__item"><a href="/category/308.html">Resistors</a></li>
		<li class="v-breadcrumbs__item"><a href="/category/439.html">Chip Resistor - Surface Mount</a></li>
	</ul>
	<table>
		<tr><td>Manufacturer</td><td><a class="brand" href="/brand-detail/108.html">UNI-ROYAL</a></td></tr>
		<tr><td>Package</td><td> 0603 </td></tr>
		<tr><td>Datasheet</td><td></td></tr>
	</table>
	<script>window.__NUXT__=(function(a,b){return {data:[{detail:{paramVOList:[{paramNameEn:a,paramValueEn:b}]}}]}}("Resistance","10kΩ"));</script>
</body></html>`)

func TestQueryCSS(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		result, err := QueryCSS(productHTML, ".v-breadcrumbs__item", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"Home", "Resistors", "Chip Resistor - Surface Mount"}, result.Values)
		assert.Equal(t, 3, result.Count)
		assert.Equal(t, ModeCSS, result.Mode)
	})

	t.Run("attribute", func(t *testing.T) {
		result, err := QueryCSS(productHTML, "a.brand @href", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"/brand-detail/108.html"}, result.Values)
	})

	t.Run("empty cells skipped", func(t *testing.T) {
		result, err := QueryCSS(productHTML, "td:nth-child(2)", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"UNI-ROYAL", "0603"}, result.Values)
	})

	t.Run("no matches", func(t *testing.T) {
		result, err := QueryCSS(productHTML, "h2.missing", 0)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Count)
		assert.Empty(t, result.Values)
		assert.NotNil(t, result.Values)
	})

	t.Run("max results", func(t *testing.T) {
		result, err := QueryCSS(productHTML, ".v-breadcrumbs__item a @href", 2)
		require.NoError(t, err)
		assert.Equal(t, []any{"/", "/category/308.html"}, result.Values)
		assert.True(t, result.Truncated)
	})

	t.Run("exact max is not truncated", func(t *testing.T) {
		result, err := QueryCSS(productHTML, ".v-breadcrumbs__item", 3)
		require.NoError(t, err)
		assert.False(t, result.Truncated)
	})
}

func TestValidateCSS(t *testing.T) {
	assert.NoError(t, ValidateCSS("table tr > td:first-child"))
	assert.NoError(t, ValidateCSS("a @href"))
	assert.Error(t, ValidateCSS(""))
	assert.Error(t, ValidateCSS("a @"))
	assert.Error(t, ValidateCSS("td:unknown-pseudo("))
}
