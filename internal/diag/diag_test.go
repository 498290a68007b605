/*
  File: diag_test.go
  Purpose: Unit tests for the diagnostic message format.
  Author: taikocss project
  Notes: The format is part of the host contract; hosts print messages
         verbatim in build output and editor overlays.
*/

package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrorFormat tests the canonical two-line message.
func TestErrorFormat(t *testing.T) {
	err := New(DynamicValue, "src/C.tsx", 3, 17, SubsystemCSS,
		`value of property "color" is not statically resolvable`,
		"Hoist the value into a theme token")

	msg := err.Error()
	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 2, "message is exactly two lines")
	assert.Equal(t, `src/C.tsx:3:17: css() — value of property "color" is not statically resolvable`, lines[0])
	assert.Equal(t, "Hint: Hoist the value into a theme token", lines[1])
	assert.False(t, strings.HasSuffix(msg, "\n"), "no trailing newline")
}

// TestErrorAsTarget tests errors.As through wrapping.
func TestErrorAsTarget(t *testing.T) {
	inner := New(BadSpread, "a.ts", 1, 1, SubsystemCSS, "r", "h")
	wrapped := fmt.Errorf("transform failed: %w", inner)

	var target *Error
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, BadSpread, target.Kind)
	assert.Equal(t, uint32(1), target.Line)
}

// TestSubsystemTags tests the four subsystem spellings.
func TestSubsystemTags(t *testing.T) {
	assert.Equal(t, Subsystem("css()"), SubsystemCSS)
	assert.Equal(t, Subsystem("globalCss"), SubsystemGlobalCSS)
	assert.Equal(t, Subsystem("keyframes"), SubsystemKeyframes)
	assert.Equal(t, Subsystem("container()"), SubsystemContainer)
}
