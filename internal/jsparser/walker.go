/*
  File: walker.go
  Purpose: Discovery of authoring-primitive call sites in source order.
  Author: taikocss project
  Notes: The walker does not descend into a recognized call; everything
         inside it belongs to the static evaluator.
*/

package jsparser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// CallKind names the authoring primitive behind a call site.
type CallKind string

const (
	KindCSS       CallKind = "css"
	KindGlobalCSS CallKind = "globalCss"
	KindKeyframes CallKind = "keyframes"
	KindContainer CallKind = "container"
)

// CallSite is one recognized call expression.
type CallSite struct {
	Kind CallKind
	// Node is the full call_expression, including a tagged template
	// parsed as call_expression with a template_string argument.
	Node *sitter.Node
	// BoundName is the variable_declarator identifier the call is
	// assigned to, or empty.
	BoundName string
}

// FindCalls walks the tree depth-first and returns recognized call sites in
// source order.
func FindCalls(s *Source) []CallSite {
	var sites []CallSite
	walkCalls(s, s.Tree.RootNode(), &sites)
	return sites
}

// walkCalls recursively collects call sites. Recognized calls are not
// descended into, so nested helper calls are left to the evaluator.
func walkCalls(s *Source, node *sitter.Node, sites *[]CallSite) {
	if node.Kind() == "call_expression" {
		if kind, ok := recognizeCall(s, node); ok {
			*sites = append(*sites, CallSite{
				Kind:      kind,
				Node:      node,
				BoundName: boundName(s, node),
			})
			return
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkCalls(s, node.Child(i), sites)
	}
}

// recognizeCall checks whether a call_expression invokes one of the four
// authoring primitives by plain identifier.
func recognizeCall(s *Source, node *sitter.Node) (CallKind, bool) {
	function := node.ChildByFieldName("function")
	if function == nil || function.Kind() != "identifier" {
		return "", false
	}
	switch s.Text(function) {
	case "css":
		return KindCSS, true
	case "globalCss":
		return KindGlobalCSS, true
	case "keyframes":
		return KindKeyframes, true
	case "container":
		return KindContainer, true
	}
	return "", false
}

// Arguments returns a call's argument expressions in order, skipping
// comments. A tagged template has no arguments node; callers handle the
// template_string argument form separately.
func Arguments(call *sitter.Node) []*sitter.Node {
	arguments := call.ChildByFieldName("arguments")
	if arguments == nil || arguments.Kind() != "arguments" {
		return nil
	}
	var args []*sitter.Node
	for i := uint(0); i < arguments.NamedChildCount(); i++ {
		child := arguments.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		args = append(args, child)
	}
	return args
}

// boundName resolves the declarator identifier a call is assigned to.
// Example: const fade = keyframes`...` binds "fade".
func boundName(s *Source, call *sitter.Node) string {
	parent := call.Parent()
	if parent == nil || parent.Kind() != "variable_declarator" {
		return ""
	}
	name := parent.ChildByFieldName("name")
	if name == nil || name.Kind() != "identifier" {
		return ""
	}
	return s.Text(name)
}
