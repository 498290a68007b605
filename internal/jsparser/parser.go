/*
  File: parser.go
  Purpose: Tree-sitter frontend for JavaScript and TypeScript sources.
  Author: taikocss project
  Notes: Grammar selection is by file extension. Parse failures are not
         errors here; callers check HasSyntaxErrors and degrade to a
         pass-through transform.
*/

package jsparser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Source is a parsed source file. Close must be called to release the tree.
type Source struct {
	Filename string
	Bytes    []byte
	Tree     *sitter.Tree
}

// languageFor picks the grammar for a filename. TSX needs its own grammar;
// plain .ts must not use it or type parameter syntax breaks.
func languageFor(filename string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tsx":
		return sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	case ".js", ".jsx", ".mjs", ".cjs":
		return sitter.NewLanguage(tree_sitter_javascript.Language())
	default:
		return sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	}
}

// Parse builds the AST for one source file. The returned error covers
// environment failures only, never syntax errors in the input.
func Parse(filename string, source []byte) (*Source, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(languageFor(filename)); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s: tree is nil", filename)
	}

	return &Source{Filename: filename, Bytes: source, Tree: tree}, nil
}

// HasSyntaxErrors reports whether the tree contains ERROR or missing nodes.
func (s *Source) HasSyntaxErrors() bool {
	return s.Tree.RootNode().HasError()
}

// Close releases the underlying tree.
func (s *Source) Close() {
	if s.Tree != nil {
		s.Tree.Close()
		s.Tree = nil
	}
}

// Text returns the source text of a node.
func (s *Source) Text(node *sitter.Node) string {
	return node.Utf8Text(s.Bytes)
}
