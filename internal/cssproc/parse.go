/*
  File: parse.go
  Purpose: Lightweight rule-tree parser over lexed CSS tokens.
  Author: taikocss project
  Notes: Block items are parsed uniformly: a '{' turns the pending tokens
         into a rule prelude, a ';'/'}' with a ':' inside turns them into a
         declaration. This handles style rules, nested at-rules, and
         keyframe frame blocks without per-at-rule grammars.
*/

package cssproc

import "strings"

// Node is one parsed item: either a rule with a prelude and a block, or a
// single declaration.
type Node struct {
	// Rule fields. Prelude holds the selector or at-rule prelude tokens.
	// HasBlock distinguishes an empty block from a blockless at-rule.
	Prelude  []Token
	Block    []Node
	IsRule   bool
	HasBlock bool

	// Declaration fields.
	Prop  string
	Value []Token

	// Start is the byte offset of the node's first token in the raw input.
	Start int
}

// parser walks the token slice once, building the tree.
type parser struct {
	tokens []Token
	index  int
}

// ParseRules builds the rule tree for a stylesheet text.
func ParseRules(tokens []Token) []Node {
	p := &parser{tokens: tokens}
	return p.parseBlock(true)
}

// parseBlock parses items until a closing brace (or end of input when
// topLevel).
func (p *parser) parseBlock(topLevel bool) []Node {
	var nodes []Node
	var pending []Token

	flushDecl := func() {
		if node, ok := buildDecl(pending); ok {
			nodes = append(nodes, node)
		}
		pending = nil
	}

	for p.index < len(p.tokens) {
		tok := p.tokens[p.index]
		switch tok.Kind {
		case TComment:
			p.index++
		case TOpenBrace:
			p.index++
			block := p.parseBlock(false)
			prelude := trimWhitespace(pending)
			pending = nil
			if len(prelude) > 0 {
				nodes = append(nodes, Node{
					IsRule:   true,
					Prelude:  prelude,
					Block:    block,
					HasBlock: true,
					Start:    prelude[0].Start,
				})
			}
		case TCloseBrace:
			p.index++
			if !topLevel {
				flushDecl()
				return nodes
			}
			// Stray close brace at the top level; drop it.
		case TSemicolon:
			p.index++
			flushDecl()
		default:
			pending = append(pending, tok)
			p.index++
		}
	}
	flushDecl()
	return nodes
}

// buildDecl converts pending tokens into a declaration node. Tokens with no
// colon (or nothing but whitespace) are discarded; at-rules without blocks
// (@import and friends) are kept as blockless rules.
func buildDecl(pending []Token) (Node, bool) {
	tokens := trimWhitespace(pending)
	if len(tokens) == 0 {
		return Node{}, false
	}
	if tokens[0].Kind == TAtKeyword {
		return Node{IsRule: true, Prelude: tokens, Start: tokens[0].Start}, true
	}
	colon := -1
	for i, tok := range tokens {
		if tok.Kind == TColon {
			colon = i
			break
		}
	}
	if colon <= 0 {
		return Node{}, false
	}
	prop := strings.ToLower(joinText(trimWhitespace(tokens[:colon])))
	value := trimWhitespace(tokens[colon+1:])
	if prop == "" || len(value) == 0 {
		return Node{}, false
	}
	return Node{Prop: prop, Value: value, Start: tokens[0].Start}, true
}

// trimWhitespace strips leading and trailing whitespace and comment tokens.
func trimWhitespace(tokens []Token) []Token {
	start := 0
	end := len(tokens)
	for start < end && (tokens[start].Kind == TWhitespace || tokens[start].Kind == TComment) {
		start++
	}
	for end > start && (tokens[end-1].Kind == TWhitespace || tokens[end-1].Kind == TComment) {
		end--
	}
	return tokens[start:end]
}

// joinText concatenates raw token text.
func joinText(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}
