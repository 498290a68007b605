/*
  File: diag.go
  Purpose: Diagnostic error type shared by every extraction subsystem.
  Author: taikocss project
  Notes: All user-facing extraction errors are built through New so the
         message format stays identical across subsystems.
*/

package diag

import "fmt"

// Kind classifies an extraction failure. Every kind is a hard failure of
// the transform call that produced it.
type Kind string

const (
	// DynamicValue marks a style value, template interpolation, or theme
	// arithmetic operand that is not statically resolvable.
	DynamicValue Kind = "dynamic_value"
	// UnknownThemePath marks a theme member chain that does not resolve
	// to a leaf in the supplied theme.
	UnknownThemePath Kind = "unknown_theme_path"
	// UnsupportedExpression marks a ternary, computed member access,
	// unsupported operator, or a call to anything other than container
	// inside a spread.
	UnsupportedExpression Kind = "unsupported_expression"
	// BadSpread marks a spread of anything other than a recognized
	// container(...) call.
	BadSpread Kind = "bad_spread"
	// BadContainerCall marks a container(...) call with the wrong arity
	// or a type outside the allowed set.
	BadContainerCall Kind = "bad_container_call"
	// ForwardKeyframesReference marks a css(...) call that references a
	// keyframes identifier declared later in the same source.
	ForwardKeyframesReference Kind = "forward_keyframes_reference"
	// InvalidCSS marks generated CSS text the processor rejected. The
	// position is the originating call expression, the finest location
	// available once text has left the AST.
	InvalidCSS Kind = "invalid_css"
)

// Subsystem names the authoring primitive whose processing produced a
// diagnostic. It appears verbatim in the message.
type Subsystem string

const (
	SubsystemCSS       Subsystem = "css()"
	SubsystemGlobalCSS Subsystem = "globalCss"
	SubsystemKeyframes Subsystem = "keyframes"
	SubsystemContainer Subsystem = "container()"
)

// Error is the single diagnostic type surfaced by the transform. Line and
// Column are 1-based and point at the start of the offending node.
type Error struct {
	Kind      Kind
	File      string
	Line      uint32
	Column    uint32
	Subsystem Subsystem
	Reason    string
	Hint      string
}

// New builds a diagnostic. Reason and Hint must be single lines; New is the
// only place the message format is assembled.
func New(kind Kind, file string, line, column uint32, subsystem Subsystem, reason, hint string) *Error {
	return &Error{
		Kind:      kind,
		File:      file,
		Line:      line,
		Column:    column,
		Subsystem: subsystem,
		Reason:    reason,
		Hint:      hint,
	}
}

// Error renders the canonical two-line message:
//
//	<file>:<line>:<col>: <subsystem> — <reason>
//	Hint: <hint>
//
// There is no trailing newline; hosts append their own.
func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s — %s\nHint: %s",
		e.File, e.Line, e.Column, e.Subsystem, e.Reason, e.Hint)
}
