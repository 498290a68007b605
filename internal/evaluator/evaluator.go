/*
  File: evaluator.go
  Purpose: Static evaluation of the closed style-expression grammar.
  Author: taikocss project
  Notes: The grammar is deliberately tiny: literals, template literals with
         static holes, theme member chains, four arithmetic operators, and
         string concatenation. Everything else produces a positioned
         diagnostic instead of a guess.
*/

package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"taikocss/internal/diag"
	"taikocss/internal/jsparser"
	"taikocss/internal/lowering"
	"taikocss/internal/position"
	"taikocss/internal/theme"
)

// Evaluator resolves expressions inside one recognized call site.
type Evaluator struct {
	Source    *jsparser.Source
	Pos       *position.Map
	Theme     *theme.Theme
	Subsystem diag.Subsystem

	// ThemeBinding is the parameter name the style callback binds the
	// theme to; empty when the call takes a plain object.
	ThemeBinding string

	// Keyframes maps identifiers of already-processed keyframes calls to
	// their kf_ names. DeclaredKeyframes holds every keyframes binding in
	// the file, so references ahead of the declaration can be told apart
	// from plain unknown identifiers.
	Keyframes         map[string]string
	DeclaredKeyframes map[string]bool
}

// errorAt builds a diagnostic positioned at a node's start.
func (e *Evaluator) errorAt(kind diag.Kind, node *sitter.Node, reason, hint string) *diag.Error {
	line, col := e.Pos.Lookup(int(node.StartByte()))
	return diag.New(kind, e.Source.Filename, line, col, e.Subsystem, reason, hint)
}

// Eval resolves one expression to a primitive style value. The what
// argument names the slot being evaluated (a property name, an
// interpolation) and appears in diagnostics.
func (e *Evaluator) Eval(node *sitter.Node, what string) (lowering.Value, error) {
	switch node.Kind() {
	case "string":
		return lowering.StringValue(e.stringLiteral(node)), nil

	case "template_string":
		text, err := e.EvalTemplate(node, what)
		if err != nil {
			return lowering.Value{}, err
		}
		return lowering.StringValue(text), nil

	case "number":
		num, err := parseNumber(e.Source.Text(node))
		if err != nil {
			return lowering.Value{}, e.errorAt(diag.UnsupportedExpression, node,
				fmt.Sprintf("numeric literal %q in %s is not a plain decimal number", e.Source.Text(node), what),
				"Use a plain decimal literal like 16 or 0.5")
		}
		return lowering.NumberValue(num), nil

	case "unary_expression":
		return e.evalUnary(node, what)

	case "null", "undefined":
		return lowering.NullValue(), nil

	case "identifier":
		return e.evalIdentifier(node, what)

	case "member_expression":
		return e.evalMemberChain(node, what)

	case "subscript_expression":
		return lowering.Value{}, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("computed member access in %s cannot be resolved at build time", what),
			"Use a dotted theme path like theme.colors.primary")

	case "ternary_expression":
		return lowering.Value{}, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("conditional expression in %s cannot be resolved at build time", what),
			"Split the styles into two css() calls and pick the class name at runtime")

	case "binary_expression":
		return e.evalBinary(node, what)

	case "parenthesized_expression":
		if inner := firstNamedChild(node); inner != nil {
			return e.Eval(inner, what)
		}
		return lowering.Value{}, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("empty parenthesized expression in %s", what),
			"Remove the empty parentheses")

	case "call_expression":
		return lowering.Value{}, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("function call in %s cannot be resolved at build time", what),
			"Only container(...) is supported, and only as a spread inside css()")
	}

	return lowering.Value{}, e.errorAt(diag.DynamicValue, node,
		fmt.Sprintf("value of %s is not statically resolvable", what),
		"Style values must be literals, theme paths, or arithmetic on them")
}

// EvalToCSSString resolves an expression and renders it as CSS text,
// rejecting null/undefined where a concrete value is required.
func (e *Evaluator) EvalToCSSString(node *sitter.Node, what string) (string, error) {
	value, err := e.Eval(node, what)
	if err != nil {
		return "", err
	}
	switch value.Kind {
	case lowering.ValueString:
		return value.Str, nil
	case lowering.ValueNumber:
		return lowering.FormatNumber(value.Num), nil
	}
	return "", e.errorAt(diag.DynamicValue, node,
		fmt.Sprintf("%s must resolve to a string or number", what),
		"null and undefined cannot appear here")
}

// evalUnary handles negative numeric literals; every other unary operator
// is outside the grammar.
func (e *Evaluator) evalUnary(node *sitter.Node, what string) (lowering.Value, error) {
	operator := node.ChildByFieldName("operator")
	argument := node.ChildByFieldName("argument")
	if operator != nil && argument != nil && e.Source.Text(operator) == "-" {
		value, err := e.Eval(argument, what)
		if err != nil {
			return lowering.Value{}, err
		}
		if value.Kind == lowering.ValueNumber {
			return lowering.NumberValue(-value.Num), nil
		}
	}
	return lowering.Value{}, e.errorAt(diag.UnsupportedExpression, node,
		fmt.Sprintf("unary expression in %s cannot be resolved at build time", what),
		"Only numeric negation is supported")
}

// evalIdentifier resolves keyframe references; anything else is dynamic.
func (e *Evaluator) evalIdentifier(node *sitter.Node, what string) (lowering.Value, error) {
	name := e.Source.Text(node)
	if resolved, ok := e.Keyframes[name]; ok {
		return lowering.StringValue(resolved), nil
	}
	if e.DeclaredKeyframes[name] {
		return lowering.Value{}, e.errorAt(diag.ForwardKeyframesReference, node,
			fmt.Sprintf("keyframes %q is referenced before its declaration", name),
			"Move the keyframes declaration above this call")
	}
	if name == e.ThemeBinding && e.ThemeBinding != "" {
		return lowering.Value{}, e.errorAt(diag.UnknownThemePath, node,
			fmt.Sprintf("bare %q in %s is not a theme leaf", name, what),
			"Finish the path, e.g. theme.colors.primary")
	}
	return lowering.Value{}, e.errorAt(diag.DynamicValue, node,
		fmt.Sprintf("identifier %q in %s is not statically known", name, what),
		"Only keyframes bindings and the theme parameter can be referenced")
}

// evalMemberChain resolves theme.group.token chains against the theme tree.
func (e *Evaluator) evalMemberChain(node *sitter.Node, what string) (lowering.Value, error) {
	path, err := e.collectMemberPath(node, what)
	if err != nil {
		return lowering.Value{}, err
	}
	root, segments := path[0], path[1:]
	if e.ThemeBinding == "" || root != e.ThemeBinding {
		return lowering.Value{}, e.errorAt(diag.DynamicValue, node,
			fmt.Sprintf("member access on %q in %s is not statically known", root, what),
			"Only the theme parameter supports member access")
	}
	value, ok := e.Theme.Lookup(segments)
	if !ok {
		return lowering.Value{}, e.errorAt(diag.UnknownThemePath, node,
			fmt.Sprintf("theme path %q does not resolve to a value", strings.Join(path, ".")),
			"Check the theme JSON for this group and token")
	}
	if value.IsNum {
		return lowering.NumberValue(value.Num), nil
	}
	return lowering.StringValue(value.Str), nil
}

// collectMemberPath flattens a member chain into identifiers, rejecting
// computed segments.
func (e *Evaluator) collectMemberPath(node *sitter.Node, what string) ([]string, error) {
	if node.Kind() == "identifier" {
		return []string{e.Source.Text(node)}, nil
	}
	if node.Kind() == "subscript_expression" {
		return nil, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("computed member access in %s cannot be resolved at build time", what),
			"Use a dotted theme path like theme.colors.primary")
	}
	if node.Kind() != "member_expression" {
		return nil, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("unsupported member chain in %s", what),
			"Theme paths are plain dotted identifier chains")
	}
	object := node.ChildByFieldName("object")
	property := node.ChildByFieldName("property")
	if object == nil || property == nil || property.Kind() != "property_identifier" {
		return nil, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("unsupported member chain in %s", what),
			"Theme paths are plain dotted identifier chains")
	}
	prefix, err := e.collectMemberPath(object, what)
	if err != nil {
		return nil, err
	}
	return append(prefix, e.Source.Text(property)), nil
}

// evalBinary implements + on strings and the four arithmetic operators on
// numbers.
func (e *Evaluator) evalBinary(node *sitter.Node, what string) (lowering.Value, error) {
	operator := node.ChildByFieldName("operator")
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if operator == nil || left == nil || right == nil {
		return lowering.Value{}, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("unsupported binary expression in %s", what),
			"Only +, -, *, and / are supported")
	}
	op := e.Source.Text(operator)
	switch op {
	case "+", "-", "*", "/":
	default:
		return lowering.Value{}, e.errorAt(diag.UnsupportedExpression, node,
			fmt.Sprintf("operator %q in %s cannot be resolved at build time", op, what),
			"Only +, -, *, and / are supported")
	}

	lhs, err := e.Eval(left, what)
	if err != nil {
		return lowering.Value{}, err
	}
	rhs, err := e.Eval(right, what)
	if err != nil {
		return lowering.Value{}, err
	}

	if lhs.Kind == lowering.ValueNumber && rhs.Kind == lowering.ValueNumber {
		switch op {
		case "+":
			return lowering.NumberValue(lhs.Num + rhs.Num), nil
		case "-":
			return lowering.NumberValue(lhs.Num - rhs.Num), nil
		case "*":
			return lowering.NumberValue(lhs.Num * rhs.Num), nil
		case "/":
			if rhs.Num == 0 {
				return lowering.Value{}, e.errorAt(diag.DynamicValue, node,
					fmt.Sprintf("division by zero in %s", what),
					"Adjust the arithmetic so the divisor is nonzero")
			}
			return lowering.NumberValue(lhs.Num / rhs.Num), nil
		}
	}

	if op == "+" && (lhs.Kind == lowering.ValueString || rhs.Kind == lowering.ValueString) {
		ls, ok1 := asConcatOperand(lhs)
		rs, ok2 := asConcatOperand(rhs)
		if ok1 && ok2 {
			return lowering.StringValue(ls + rs), nil
		}
	}

	return lowering.Value{}, e.errorAt(diag.DynamicValue, node,
		fmt.Sprintf("operands of %q in %s are not strings or numbers", op, what),
		"Arithmetic needs numbers; + also accepts strings")
}

// asConcatOperand renders a value for string concatenation.
func asConcatOperand(value lowering.Value) (string, bool) {
	switch value.Kind {
	case lowering.ValueString:
		return value.Str, true
	case lowering.ValueNumber:
		return lowering.FormatNumber(value.Num), true
	}
	return "", false
}

// EvalTemplate concatenates a template literal's fragments with statically
// evaluated interpolations.
func (e *Evaluator) EvalTemplate(node *sitter.Node, what string) (string, error) {
	var sb strings.Builder
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_fragment":
			sb.WriteString(e.Source.Text(child))
		case "escape_sequence":
			sb.WriteString(unescape(e.Source.Text(child)))
		case "template_substitution":
			expr := firstNamedChild(child)
			if expr == nil {
				continue
			}
			text, err := e.EvalToCSSString(expr, fmt.Sprintf("interpolation in %s", what))
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}

// stringLiteral decodes a string node's fragments and escapes.
func (e *Evaluator) stringLiteral(node *sitter.Node) string {
	var sb strings.Builder
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_fragment":
			sb.WriteString(e.Source.Text(child))
		case "escape_sequence":
			sb.WriteString(unescape(e.Source.Text(child)))
		}
	}
	return sb.String()
}

// unescape decodes one backslash escape sequence.
func unescape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '\\', '\'', '"', '`', '$':
		return seq[1:]
	}
	// Unicode and hex escapes pass through unchanged; the CSS processor
	// validates whatever they produce.
	return seq
}

// parseNumber parses a decimal numeric literal, tolerating separators.
func parseNumber(text string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
}

// firstNamedChild returns the first named child of a node, skipping
// punctuation and comments.
func firstNamedChild(node *sitter.Node) *sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "comment" {
			return child
		}
	}
	return nil
}
