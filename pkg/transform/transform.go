/*
  File: transform.go
  Purpose: Top-level orchestration of the extraction pipeline.
  Author: taikocss project
  Notes: Transform is a pure function of its inputs. It parses, walks call
         sites in source order, evaluates, lowers, processes, hashes, and
         rewrites; the first diagnostic aborts the call.
*/

package transform

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"taikocss/internal/cssproc"
	"taikocss/internal/diag"
	"taikocss/internal/evaluator"
	"taikocss/internal/jsparser"
	"taikocss/internal/lowering"
	"taikocss/internal/position"
	"taikocss/internal/rewriter"
	"taikocss/internal/theme"
	"taikocss/internal/utils"
)

// Placeholder is the neutral name rules are lowered under before their
// content hash is known. Hashes are computed over the pre-replacement
// minified text, so the final name substitution cannot perturb them.
const Placeholder = "__taiko_placeholder__"

// state carries everything one transform call owns.
type state struct {
	src     *jsparser.Source
	pos     *position.Map
	theme   *theme.Theme
	dir     cssproc.Direction
	kfTable map[string]string
	edits   []rewriter.Edit
	result  *Result
}

// Transform extracts style rules from one JS/TS source file. themeJSON and
// defaultDirection are optional ("" uses an empty theme and ltr). A source
// that fails to parse degrades to a pass-through result, never an error.
func Transform(filename, source, themeJSON, defaultDirection string) (*Result, error) {
	dir, err := parseDirection(defaultDirection)
	if err != nil {
		return nil, err
	}

	th, err := theme.Parse(themeJSON)
	if err != nil {
		return nil, err
	}

	src, err := jsparser.Parse(filename, []byte(source))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	result := &Result{Code: source, CSSRules: []Rule{}, GlobalCSS: []Rule{}, Keyframes: []KeyframesRule{}}
	if src.HasSyntaxErrors() {
		return result, nil
	}

	s := &state{
		src:     src,
		pos:     position.NewMap(src.Bytes),
		theme:   th,
		dir:     dir,
		kfTable: make(map[string]string),
		result:  result,
	}

	sites := jsparser.FindCalls(src)
	declared := declaredKeyframes(sites)

	for _, site := range sites {
		switch site.Kind {
		case jsparser.KindKeyframes:
			err = s.handleKeyframes(site, declared)
		case jsparser.KindGlobalCSS:
			err = s.handleGlobalCSS(site, declared)
		case jsparser.KindCSS:
			err = s.handleCSS(site, declared)
		case jsparser.KindContainer:
			err = s.strayContainer(site)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(s.edits) > 0 {
		if err := rewriter.Validate(len(src.Bytes), s.edits); err != nil {
			return nil, err
		}
		result.Code = rewriter.Apply(src.Bytes, s.edits)
		mapJSON, err := rewriter.BuildMap(filename, src.Bytes, s.edits)
		if err != nil {
			return nil, err
		}
		result.Map = mapJSON
	}
	return result, nil
}

// parseDirection validates the optional direction argument.
func parseDirection(dir string) (cssproc.Direction, error) {
	switch dir {
	case "", "ltr":
		return cssproc.DirectionLTR, nil
	case "rtl":
		return cssproc.DirectionRTL, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be ltr or rtl", dir)
}

// declaredKeyframes collects every keyframes binding in the file so the
// evaluator can tell forward references apart from unknown identifiers.
func declaredKeyframes(sites []jsparser.CallSite) map[string]bool {
	declared := make(map[string]bool)
	for _, site := range sites {
		if site.Kind == jsparser.KindKeyframes && site.BoundName != "" {
			declared[site.BoundName] = true
		}
	}
	return declared
}

// newEvaluator builds an evaluator for one call site.
func (s *state) newEvaluator(subsystem diag.Subsystem, declared map[string]bool, themeBinding string) *evaluator.Evaluator {
	return &evaluator.Evaluator{
		Source:            s.src,
		Pos:               s.pos,
		Theme:             s.theme,
		Subsystem:         subsystem,
		ThemeBinding:      themeBinding,
		Keyframes:         s.kfTable,
		DeclaredKeyframes: declared,
	}
}

// callError builds a diagnostic at a call expression's start.
func (s *state) callError(kind diag.Kind, subsystem diag.Subsystem, node *sitter.Node, reason, hint string) *diag.Error {
	line, col := s.pos.Lookup(int(node.StartByte()))
	return diag.New(kind, s.src.Filename, line, col, subsystem, reason, hint)
}

// process runs the CSS processor for one rule, mapping syntax failures to
// a diagnostic at the originating call.
func (s *state) process(raw string, subsystem diag.Subsystem, call *sitter.Node) (*cssproc.Result, error) {
	result, err := cssproc.Process(raw, cssproc.Options{
		File:          s.src.Filename,
		Direction:     s.dir,
		EmitSourceMap: true,
	})
	if err != nil {
		if synErr, ok := err.(*cssproc.SyntaxError); ok {
			return nil, s.callError(diag.InvalidCSS, subsystem, call,
				fmt.Sprintf("generated CSS is invalid: %s", synErr.Error()),
				"Check the style values and selectors produced by this call")
		}
		return nil, err
	}
	return result, nil
}

// handleKeyframes extracts one keyframes tagged template.
func (s *state) handleKeyframes(site jsparser.CallSite, declared map[string]bool) error {
	ev := s.newEvaluator(diag.SubsystemKeyframes, declared, "")
	body, err := s.taggedTemplateBody(ev, site, diag.SubsystemKeyframes)
	if err != nil {
		return err
	}

	raw := "@keyframes " + Placeholder + "{" + body + "}"
	processed, err := s.process(raw, diag.SubsystemKeyframes, site.Node)
	if err != nil {
		return err
	}

	hash := utils.RuleHash(processed.CSS)
	name := "kf_" + hash
	s.result.Keyframes = append(s.result.Keyframes, KeyframesRule{
		Hash: hash,
		Name: name,
		CSS:  strings.ReplaceAll(processed.CSS, Placeholder, name),
		Map:  processed.Map,
	})

	if site.BoundName != "" {
		s.kfTable[site.BoundName] = name
	}
	s.replaceCall(site.Node, fmt.Sprintf("%q", name))
	return nil
}

// handleGlobalCSS extracts one globalCss tagged template.
func (s *state) handleGlobalCSS(site jsparser.CallSite, declared map[string]bool) error {
	ev := s.newEvaluator(diag.SubsystemGlobalCSS, declared, "")
	body, err := s.taggedTemplateBody(ev, site, diag.SubsystemGlobalCSS)
	if err != nil {
		return err
	}

	processed, err := s.process(body, diag.SubsystemGlobalCSS, site.Node)
	if err != nil {
		return err
	}

	s.result.GlobalCSS = append(s.result.GlobalCSS, Rule{
		Hash: utils.RuleHash(processed.CSS),
		CSS:  processed.CSS,
		Map:  processed.Map,
	})
	s.replaceCall(site.Node, "undefined")
	return nil
}

// handleCSS extracts one css(...) call.
func (s *state) handleCSS(site jsparser.CallSite, declared map[string]bool) error {
	objNode, themeBinding, err := s.cssArgument(site)
	if err != nil {
		return err
	}

	ev := s.newEvaluator(diag.SubsystemCSS, declared, themeBinding)
	obj, err := ev.EvalObject(objNode)
	if err != nil {
		return err
	}

	raw := lowering.Lower(obj, "."+Placeholder)
	processed, err := s.process(raw, diag.SubsystemCSS, site.Node)
	if err != nil {
		return err
	}

	hash := utils.RuleHash(processed.CSS)
	className := "cls_" + hash
	s.result.CSSRules = append(s.result.CSSRules, Rule{
		Hash: hash,
		CSS:  strings.ReplaceAll(processed.CSS, Placeholder, className),
		Map:  processed.Map,
	})
	s.replaceCall(site.Node, fmt.Sprintf("%q", className))
	return nil
}

// strayContainer rejects container() outside a css() spread.
func (s *state) strayContainer(site jsparser.CallSite) error {
	return s.callError(diag.UnsupportedExpression, diag.SubsystemContainer, site.Node,
		"container() may only appear as a spread inside a css() style object",
		"Write css({ ...container(type), ... })")
}

// taggedTemplateBody resolves a tagged template's concatenated text.
func (s *state) taggedTemplateBody(ev *evaluator.Evaluator, site jsparser.CallSite, subsystem diag.Subsystem) (string, error) {
	template := site.Node.ChildByFieldName("arguments")
	if template == nil || template.Kind() != "template_string" {
		return "", s.callError(diag.UnsupportedExpression, subsystem, site.Node,
			fmt.Sprintf("%s must be used as a tagged template", subsystem),
			"Write "+string(subsystem)+"`...`")
	}
	return ev.EvalTemplate(template, string(subsystem)+" template")
}

// cssArgument resolves the css() argument to the style object literal and
// the theme parameter binding, when present.
func (s *state) cssArgument(site jsparser.CallSite) (*sitter.Node, string, error) {
	args := jsparser.Arguments(site.Node)
	if len(args) != 1 {
		return nil, "", s.callError(diag.UnsupportedExpression, diag.SubsystemCSS, site.Node,
			fmt.Sprintf("css() takes exactly one argument, got %d", len(args)),
			"Pass css({...}) or css(({theme}) => ({...}))")
	}

	arg := args[0]
	switch arg.Kind() {
	case "object":
		return arg, "", nil
	case "arrow_function":
		return s.arrowStyleObject(arg)
	}
	return nil, "", s.callError(diag.UnsupportedExpression, diag.SubsystemCSS, arg,
		"css() argument must be an object literal or a theme callback",
		"Pass css({...}) or css(({theme}) => ({...}))")
}

// arrowStyleObject unwraps a theme callback: its parameter binds the theme
// and its body must be a parenthesized object literal.
func (s *state) arrowStyleObject(arrow *sitter.Node) (*sitter.Node, string, error) {
	binding, err := s.themeBinding(arrow)
	if err != nil {
		return nil, "", err
	}

	body := arrow.ChildByFieldName("body")
	if body != nil && body.Kind() == "parenthesized_expression" {
		for i := uint(0); i < body.NamedChildCount(); i++ {
			child := body.NamedChild(i)
			if child.Kind() == "object" {
				return child, binding, nil
			}
		}
	}
	return nil, "", s.callError(diag.UnsupportedExpression, diag.SubsystemCSS, arrow,
		"theme callback body must be a parenthesized object literal",
		"Write css(({theme}) => ({ ... }))")
}

// themeBinding extracts the identifier the callback binds the theme to:
// either a destructured {theme} or a single plain parameter.
func (s *state) themeBinding(arrow *sitter.Node) (string, error) {
	if param := arrow.ChildByFieldName("parameter"); param != nil && param.Kind() == "identifier" {
		return s.src.Text(param), nil
	}

	params := arrow.ChildByFieldName("parameters")
	if params == nil || params.NamedChildCount() != 1 {
		return "", s.callError(diag.UnsupportedExpression, diag.SubsystemCSS, arrow,
			"theme callback must take exactly one parameter",
			"Write css(({theme}) => ({ ... }))")
	}

	pattern := params.NamedChild(0)
	// TypeScript wraps each parameter in required_parameter.
	if pattern.Kind() == "required_parameter" {
		if inner := pattern.ChildByFieldName("pattern"); inner != nil {
			pattern = inner
		}
	}

	switch pattern.Kind() {
	case "identifier":
		return s.src.Text(pattern), nil
	case "object_pattern":
		if name, ok := s.destructuredTheme(pattern); ok {
			return name, nil
		}
	}
	return "", s.callError(diag.UnsupportedExpression, diag.SubsystemCSS, pattern,
		"theme callback parameter must be an identifier or a {theme} destructuring",
		"Write css(({theme}) => ({ ... }))")
}

// destructuredTheme resolves {theme} and {theme: alias} patterns.
func (s *state) destructuredTheme(pattern *sitter.Node) (string, bool) {
	for i := uint(0); i < pattern.NamedChildCount(); i++ {
		child := pattern.NamedChild(i)
		switch child.Kind() {
		case "shorthand_property_identifier_pattern":
			if s.src.Text(child) == "theme" {
				return "theme", true
			}
		case "pair_pattern":
			key := child.ChildByFieldName("key")
			value := child.ChildByFieldName("value")
			if key != nil && value != nil && s.src.Text(key) == "theme" && value.Kind() == "identifier" {
				return s.src.Text(value), true
			}
		}
	}
	return "", false
}

// replaceCall records the byte-splice edit erasing one call expression.
func (s *state) replaceCall(call *sitter.Node, replacement string) {
	s.edits = append(s.edits, rewriter.Edit{
		Start:       int(call.StartByte()),
		End:         int(call.EndByte()),
		Replacement: replacement,
	})
}
