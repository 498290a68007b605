/*
  File: object.go
  Purpose: Style-object construction from object-literal AST nodes.
  Author: taikocss project
  Notes: Keys are property names or nested-rule selectors; the two are told
         apart by the value's shape, never by the key text alone.
*/

package evaluator

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"taikocss/internal/diag"
	"taikocss/internal/lowering"
)

// EvalObject converts an object literal into an ordered style object.
func (e *Evaluator) EvalObject(node *sitter.Node) (*lowering.StyleObject, error) {
	if node.Kind() != "object" {
		return nil, e.errorAt(diag.UnsupportedExpression, node,
			"style argument must be an object literal",
			"Pass css({...}) or css(({theme}) => ({...}))")
	}

	obj := &lowering.StyleObject{}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "comment":
			continue
		case "pair":
			if err := e.evalPair(child, obj); err != nil {
				return nil, err
			}
		case "spread_element":
			entries, err := e.evalSpread(child)
			if err != nil {
				return nil, err
			}
			obj.Entries = append(obj.Entries, entries...)
		default:
			return nil, e.errorAt(diag.UnsupportedExpression, child,
				fmt.Sprintf("unsupported object member %q", child.Kind()),
				"Style objects hold key: value pairs and container() spreads")
		}
	}
	return obj, nil
}

// evalPair resolves one key: value member into the style object.
func (e *Evaluator) evalPair(pair *sitter.Node, obj *lowering.StyleObject) error {
	keyNode := pair.ChildByFieldName("key")
	valueNode := pair.ChildByFieldName("value")
	if keyNode == nil || valueNode == nil {
		return e.errorAt(diag.UnsupportedExpression, pair,
			"malformed object member", "Style objects hold key: value pairs")
	}

	key, err := e.pairKey(keyNode)
	if err != nil {
		return err
	}

	if valueNode.Kind() == "object" {
		nested, err := e.EvalObject(valueNode)
		if err != nil {
			return err
		}
		obj.Add(key, lowering.ObjectValue(nested))
		return nil
	}

	value, err := e.Eval(valueNode, fmt.Sprintf("property %q", key))
	if err != nil {
		return err
	}
	obj.Add(key, value)
	return nil
}

// pairKey decodes a property key: identifiers and string keys are allowed,
// computed keys are not statically resolvable.
func (e *Evaluator) pairKey(keyNode *sitter.Node) (string, error) {
	switch keyNode.Kind() {
	case "property_identifier":
		return e.Source.Text(keyNode), nil
	case "string":
		return e.stringLiteral(keyNode), nil
	case "computed_property_name":
		return "", e.errorAt(diag.UnsupportedExpression, keyNode,
			"computed property keys cannot be resolved at build time",
			"Write the selector or property name literally")
	}
	return "", e.errorAt(diag.UnsupportedExpression, keyNode,
		fmt.Sprintf("unsupported property key %q", keyNode.Kind()),
		"Keys must be identifiers or string literals")
}

// evalSpread admits exactly one shape: ...container(...).
func (e *Evaluator) evalSpread(spread *sitter.Node) ([]lowering.Entry, error) {
	expr := firstNamedChild(spread)
	if expr == nil || expr.Kind() != "call_expression" {
		return nil, e.errorAt(diag.BadSpread, spread,
			"only container(...) may be spread into a style object",
			"Replace the spread with ...container(type) or inline the properties")
	}
	function := expr.ChildByFieldName("function")
	if function == nil || function.Kind() != "identifier" || e.Source.Text(function) != "container" {
		return nil, e.errorAt(diag.BadSpread, spread,
			"only container(...) may be spread into a style object",
			"Replace the spread with ...container(type) or inline the properties")
	}
	return e.ExpandContainer(expr)
}
