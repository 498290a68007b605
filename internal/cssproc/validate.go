/*
  File: validate.go
  Purpose: Tree-sitter based syntax validation of generated CSS text.
  Author: taikocss project
  Notes: Validation runs before minification so error offsets refer to the
         raw (pre-minification) text.
*/

package cssproc

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// SyntaxError reports the first invalid region found in a stylesheet text.
// Offset is a byte offset into the validated text.
type SyntaxError struct {
	Offset  int
	Snippet string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid CSS near %q", e.Snippet)
}

// Validate parses the text with the CSS grammar and returns a SyntaxError
// for the first ERROR node, or nil when the text is well-formed.
func Validate(css string) error {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(tree_sitter_css.Language())); err != nil {
		return fmt.Errorf("failed to set CSS language: %w", err)
	}

	source := []byte(css)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return fmt.Errorf("failed to parse CSS: tree is nil")
	}
	defer tree.Close()

	if errNode := findErrorNode(tree.RootNode()); errNode != nil {
		snippet := errNode.Utf8Text(source)
		if len(snippet) > 40 {
			snippet = snippet[:40]
		}
		return &SyntaxError{Offset: int(errNode.StartByte()), Snippet: snippet}
	}
	return nil
}

// findErrorNode walks the AST for the first ERROR or missing node.
func findErrorNode(node *sitter.Node) *sitter.Node {
	if node.Kind() == "ERROR" || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := findErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return node
}
