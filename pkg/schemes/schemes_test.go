/*
  File: schemes_test.go
  Purpose: Unit tests for color-scheme CSS emission.
  Author: taikocss project
  Notes: Asserts the attribute-selector shape and deterministic ordering.
*/

package schemes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeJSON = `{
	"colors": {"primary": "tomato"},
	"colorSchemes": {
		"brand": {
			"light": {"colors": {"bg": "#ffffff", "fg": "#111111"}},
			"dark":  {"colors": {"bg": "#000000"}, "elevation": {"card": 4}}
		}
	}
}`

// TestGenerateSchemeBlocks tests the selector and variable shapes.
func TestGenerateSchemeBlocks(t *testing.T) {
	css, err := GenerateFromJSON(themeJSON)
	require.NoError(t, err)

	assert.Contains(t, css, `[data-color-scheme="brand"][data-mode="light"] {`)
	assert.Contains(t, css, `[data-color-scheme="brand"][data-mode="dark"] {`)
	assert.Contains(t, css, "--colors-bg: #ffffff;")
	assert.Contains(t, css, "--colors-fg: #111111;")
	assert.Contains(t, css, "--elevation-card: 4;")
}

// TestGenerateDeterministic tests repeat-call stability.
func TestGenerateDeterministic(t *testing.T) {
	first, err := GenerateFromJSON(themeJSON)
	require.NoError(t, err)
	second, err := GenerateFromJSON(themeJSON)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestGenerateEmpty tests themes without colorSchemes.
func TestGenerateEmpty(t *testing.T) {
	css, err := GenerateFromJSON(`{"colors":{"primary":"tomato"}}`)
	require.NoError(t, err)
	assert.Empty(t, css)

	css, err = GenerateFromJSON("")
	require.NoError(t, err)
	assert.Empty(t, css)
}
