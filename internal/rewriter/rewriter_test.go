/*
  File: rewriter_test.go
  Purpose: Unit tests for byte splicing and JS map emission.
  Author: taikocss project
  Notes: Splice results are compared byte-for-byte; maps are checked
         structurally.
*/

package rewriter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplySingleEdit tests one replacement in the middle of a line.
func TestApplySingleEdit(t *testing.T) {
	source := []byte(`const b = css({ color: 'red' });`)
	out := Apply(source, []Edit{{Start: 10, End: 31, Replacement: `"cls_12345678"`}})
	assert.Equal(t, `const b = "cls_12345678";`, out)
}

// TestApplyMultipleEdits tests splicing order and surrounding bytes.
func TestApplyMultipleEdits(t *testing.T) {
	source := []byte("aaBBccDDee")
	out := Apply(source, []Edit{
		{Start: 6, End: 8, Replacement: "2"},
		{Start: 2, End: 4, Replacement: "1"},
	})
	assert.Equal(t, "aa1cc2ee", out)
}

// TestApplyNoEdits tests the pass-through case.
func TestApplyNoEdits(t *testing.T) {
	source := []byte("unchanged")
	assert.Equal(t, "unchanged", Apply(source, nil))
}

// TestValidateOverlap tests overlap rejection.
func TestValidateOverlap(t *testing.T) {
	err := Validate(10, []Edit{{Start: 0, End: 5}, {Start: 4, End: 6}})
	require.Error(t, err)

	err = Validate(10, []Edit{{Start: 0, End: 5}, {Start: 5, End: 6}})
	assert.NoError(t, err, "adjacent edits do not overlap")

	err = Validate(4, []Edit{{Start: 0, End: 5}})
	assert.Error(t, err, "out-of-bounds edit must be rejected")
}

// TestBuildMapShape tests the map document and that mappings exist for a
// multi-line source with one replacement.
func TestBuildMapShape(t *testing.T) {
	source := []byte("line one\nconst b = css({ color: 'red' });\nline three\n")
	edits := []Edit{{Start: 19, End: 40, Replacement: `"cls_aabbccdd"`}}

	mapJSON, err := BuildMap("src/App.tsx", source, edits)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(mapJSON), &doc))
	assert.Equal(t, float64(3), doc["version"])
	assert.Equal(t, []any{"src/App.tsx"}, doc["sources"])
	assert.NotEmpty(t, doc["mappings"])

	// Three output lines means at most two semicolons separate mapping
	// groups; the encoded string must cover multiple lines.
	assert.Contains(t, doc["mappings"], ";")
}
