/*
  File: targets.go
  Purpose: Fixed browser targets and the vendor-prefix rules they require.
  Author: taikocss project
  Notes: The target set is part of the tool contract and never configurable
         from the outside; the table below, plus the background-clip:text
         rule in Prefixes, is the full set of prefixes those targets still
         need.
*/

package cssproc

import "strings"

// Targets names the minimum browser versions driving lowering decisions.
type Targets struct {
	Chrome  int
	Safari  int
	Firefox int
}

// DefaultTargets is the fixed support matrix: Chrome 105, Safari 16,
// Firefox 110.
var DefaultTargets = Targets{Chrome: 105, Safari: 16, Firefox: 110}

// webkitPrefixed lists properties that still need a -webkit- copy for
// Safari 16 (and, for text-size-adjust, Chrome).
var webkitPrefixed = map[string]bool{
	"user-select":          true,
	"backdrop-filter":      true,
	"text-size-adjust":     true,
	"box-decoration-break": true,
	"mask":                 true,
	"mask-image":           true,
	"mask-size":            true,
	"mask-position":        true,
	"mask-repeat":          true,
	"mask-origin":          true,
	"mask-clip":            true,
	"mask-composite":       true,
}

// Prefixes returns the vendor prefixes a declaration needs under these
// targets. background-clip is prefixed only for its text value.
func (t Targets) Prefixes(prop, value string) []string {
	if webkitPrefixed[prop] {
		return []string{"-webkit-"}
	}
	if prop == "background-clip" && strings.Contains(strings.ToLower(value), "text") {
		return []string{"-webkit-"}
	}
	return nil
}
