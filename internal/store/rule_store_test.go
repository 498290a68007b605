/*
  File: rule_store_test.go
  Purpose: Unit tests for the rule cache.
  Author: taikocss project
  Notes: Uses a temporary database per test.
*/

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a store backed by a temp file.
func newTestStore(t *testing.T) *RuleStore {
	t.Helper()
	s, err := NewRuleStore(filepath.Join(t.TempDir(), "rules.db"))
	require.NoError(t, err, "store should open and migrate")
	t.Cleanup(func() { s.Close() })
	return s
}

// TestPutAndGetRule tests round-tripping a rule.
func TestPutAndGetRule(t *testing.T) {
	s := newTestStore(t)

	inserted, err := s.PutRule("aabbccdd", "component", ".cls_aabbccdd{color:red}")
	require.NoError(t, err)
	assert.True(t, inserted)

	rule, err := s.GetRule("aabbccdd", "component")
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, ".cls_aabbccdd{color:red}", rule.CSS)
}

// TestPutRuleDeduplicates tests hash-keyed de-duplication.
func TestPutRuleDeduplicates(t *testing.T) {
	s := newTestStore(t)

	inserted, err := s.PutRule("aabbccdd", "component", ".cls_aabbccdd{color:red}")
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.PutRule("aabbccdd", "component", ".cls_aabbccdd{color:red}")
	require.NoError(t, err)
	assert.False(t, inserted, "second insert of the same hash is a no-op")

	count, err := s.RuleCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestGetRuleMiss tests the nil-without-error miss contract.
func TestGetRuleMiss(t *testing.T) {
	s := newTestStore(t)
	rule, err := s.GetRule("00000000", "component")
	require.NoError(t, err)
	assert.Nil(t, rule)
}

// TestEmissionLifecycle tests recording, listing, and clearing emissions.
func TestEmissionLifecycle(t *testing.T) {
	s := newTestStore(t)
	buildID := s.BeginBuild()
	require.NotEmpty(t, buildID)

	require.NoError(t, s.RecordEmission(buildID, "src/A.tsx", "11111111"))
	require.NoError(t, s.RecordEmission(buildID, "src/A.tsx", "22222222"))
	require.NoError(t, s.RecordEmission(buildID, "src/B.tsx", "33333333"))

	hashes, err := s.EmittedHashes(buildID, "src/A.tsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"11111111", "22222222"}, hashes)

	require.NoError(t, s.ClearEmissions("src/A.tsx"))
	hashes, err = s.EmittedHashes(buildID, "src/A.tsx")
	require.NoError(t, err)
	assert.Empty(t, hashes)

	hashes, err = s.EmittedHashes(buildID, "src/B.tsx")
	require.NoError(t, err)
	assert.Len(t, hashes, 1)
}
