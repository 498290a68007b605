/*
  File: schemes.go
  Purpose: Color-scheme CSS variable block emission from the theme.
  Author: taikocss project
  Notes: Runs once at host startup, independent of per-file transforms.
         Output order is sorted so repeated builds emit identical text.
*/

package schemes

import (
	"fmt"
	"sort"
	"strings"

	"taikocss/internal/theme"
)

// Generate renders one rule per scheme and mode:
//
//	[data-color-scheme="S"][data-mode="M"] { --<group>-<token>: <value>; }
//
// Schemes, groups, and tokens are emitted in sorted order for
// deterministic output.
func Generate(th *theme.Theme) string {
	allSchemes := th.Schemes()
	names := make([]string, 0, len(allSchemes))
	for name := range allSchemes {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		scheme := allSchemes[name]
		writeMode(&sb, name, "light", scheme.Light)
		writeMode(&sb, name, "dark", scheme.Dark)
	}
	return sb.String()
}

// GenerateFromJSON parses a theme document and renders its scheme blocks.
func GenerateFromJSON(themeJSON string) (string, error) {
	th, err := theme.Parse(themeJSON)
	if err != nil {
		return "", err
	}
	return Generate(th), nil
}

// writeMode renders the variable block of one scheme mode. Absent modes
// emit nothing.
func writeMode(sb *strings.Builder, scheme, mode string, tokens theme.SchemeTokens) {
	if len(tokens) == 0 {
		return
	}

	groups := make([]string, 0, len(tokens))
	for group := range tokens {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	sb.WriteString(fmt.Sprintf("[data-color-scheme=%q][data-mode=%q] {\n", scheme, mode))
	for _, groupName := range groups {
		group := tokens[groupName]
		tokenNames := make([]string, 0, len(group))
		for token := range group {
			tokenNames = append(tokenNames, token)
		}
		sort.Strings(tokenNames)

		for _, token := range tokenNames {
			sb.WriteString(fmt.Sprintf("  --%s-%s: %s;\n", groupName, token, group[token].String()))
		}
	}
	sb.WriteString("}\n")
}
