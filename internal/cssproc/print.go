/*
  File: print.go
  Purpose: Minifying printer for the parsed rule tree.
  Author: taikocss project
  Notes: Whitespace survives only where removing it would merge two tokens
         or delete a descendant combinator. Numeric and color mangling
         applies in value position only, never in selectors.
*/

package cssproc

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// rulePos pairs a generated byte offset with the original byte offset of a
// top-level rule, for CSS source-map emission.
type rulePos struct {
	Generated int
	Original  int
}

// printer accumulates minified output.
type printer struct {
	sb      strings.Builder
	targets Targets
	rules   []rulePos
}

// Print renders the rule tree as minified CSS and reports top-level rule
// positions for the source map.
func Print(nodes []Node, targets Targets) (string, []rulePos) {
	p := &printer{targets: targets}
	p.printNodes(nodes, true)
	return p.sb.String(), p.rules
}

// printNodes prints a block's items. Declarations are separated with
// semicolons; the final declaration drops its terminator.
func (p *printer) printNodes(nodes []Node, topLevel bool) {
	needSemi := false
	for _, node := range nodes {
		if needSemi {
			p.sb.WriteByte(';')
			needSemi = false
		}
		if topLevel {
			p.rules = append(p.rules, rulePos{Generated: p.sb.Len(), Original: node.Start})
		}
		if node.IsRule {
			p.printTokens(node.Prelude)
			if !node.HasBlock && node.Prelude[0].Kind == TAtKeyword {
				needSemi = true
				continue
			}
			p.sb.WriteByte('{')
			p.printNodes(node.Block, false)
			p.sb.WriteByte('}')
			continue
		}
		p.printDecl(node)
		needSemi = true
	}
}

// printDecl prints one declaration, inserting vendor-prefixed copies first
// when the targets require them.
func (p *printer) printDecl(node Node) {
	value := p.renderValue(node.Value)
	for _, prefix := range p.targets.Prefixes(node.Prop, value) {
		p.sb.WriteString(prefix)
		p.sb.WriteString(node.Prop)
		p.sb.WriteByte(':')
		p.sb.WriteString(value)
		p.sb.WriteByte(';')
	}
	p.sb.WriteString(node.Prop)
	p.sb.WriteByte(':')
	p.sb.WriteString(value)
}

// renderValue prints value tokens with mangling into a standalone string.
func (p *printer) renderValue(tokens []Token) string {
	sub := &printer{targets: p.targets}
	sub.printValueTokens(tokens)
	return sub.sb.String()
}

// printTokens prints prelude (selector or at-rule) tokens: whitespace is
// collapsed but token text is otherwise preserved.
func (p *printer) printTokens(tokens []Token) {
	var prev *Token
	for i := range tokens {
		tok := tokens[i]
		if tok.Kind == TComment {
			continue
		}
		if tok.Kind == TWhitespace {
			continue
		}
		if prev != nil && needsSpace(*prev, tok, hadWhitespaceBetween(tokens, i)) {
			p.sb.WriteByte(' ')
		}
		p.sb.WriteString(tok.Text)
		prev = &tokens[i]
	}
}

// printValueTokens prints declaration-value tokens with numeric and color
// mangling applied.
func (p *printer) printValueTokens(tokens []Token) {
	var prev *Token
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind == TComment || tok.Kind == TWhitespace {
			continue
		}
		if prev != nil && needsSpace(*prev, tok, hadWhitespaceBetween(tokens, i)) {
			p.sb.WriteByte(' ')
		}
		switch tok.Kind {
		case TNumber:
			p.sb.WriteString(mangleNumber(tok.Text))
		case TDimension:
			p.sb.WriteString(mangleDimension(tok.Text))
		case TPercentage:
			num := strings.TrimSuffix(tok.Text, "%")
			p.sb.WriteString(mangleNumber(num))
			p.sb.WriteByte('%')
		case THash:
			p.sb.WriteString(mangleHexColor(tok.Text))
		case TFunction:
			if hex, next, ok := collapseRGBCall(tokens, i); ok {
				p.sb.WriteString(hex)
				i = next
				tok = Token{Kind: THash, Text: hex}
				prev = &tok
				continue
			}
			p.sb.WriteString(tok.Text)
		default:
			p.sb.WriteString(tok.Text)
		}
		prev = &tokens[i]
	}
}

// hadWhitespaceBetween reports whether any whitespace token sits directly
// before index i.
func hadWhitespaceBetween(tokens []Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch tokens[j].Kind {
		case TWhitespace:
			return true
		case TComment:
			continue
		default:
			return false
		}
	}
	return false
}

// needsSpace decides whether the source whitespace between two tokens is
// load-bearing.
func needsSpace(prev, next Token, hadWhitespace bool) bool {
	if !hadWhitespace {
		return false
	}
	return spaceBefore(prev) && spaceAfter(next)
}

// spaceBefore reports whether a token can end a whitespace-separated unit.
func spaceBefore(tok Token) bool {
	switch tok.Kind {
	case TIdent, TNumber, TDimension, TPercentage, THash, TString, TURL,
		TCloseParen, TCloseBracket, TAtKeyword:
		return true
	case TDelim:
		return tok.Text == "*" || tok.Text == "&" || tok.Text == "-" || tok.Text == "+" || tok.Text == ">" || tok.Text == "~"
	}
	return false
}

// spaceAfter reports whether a token can start a whitespace-separated unit.
func spaceAfter(tok Token) bool {
	switch tok.Kind {
	case TIdent, TNumber, TDimension, TPercentage, THash, TString, TURL,
		TFunction, TAtKeyword, TOpenBracket, TColon, TOpenParen:
		return true
	case TDelim:
		switch tok.Text {
		case "*", "&", ".", "-", "+", ">", "~":
			return true
		}
	}
	return false
}

// lengthUnits are the units whose zero values render as a bare 0.
var lengthUnits = map[string]bool{
	"px": true, "em": true, "rem": true, "ex": true, "ch": true,
	"vw": true, "vh": true, "vmin": true, "vmax": true,
	"cm": true, "mm": true, "in": true, "pt": true, "pc": true, "q": true,
}

// mangleNumber canonicalizes a numeric literal: no leading plus or zero, no
// trailing fraction zeros.
func mangleNumber(text string) string {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	if v == 0 {
		return "0"
	}
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.HasPrefix(out, "0.") {
		out = out[1:]
	} else if strings.HasPrefix(out, "-0.") {
		out = "-" + out[2:]
	}
	return out
}

// mangleDimension canonicalizes a number+unit token, collapsing zero
// lengths to 0.
func mangleDimension(text string) string {
	split := len(text)
	for split > 0 {
		c := text[split-1]
		if isDigit(c) || c == '.' {
			break
		}
		split--
	}
	num, unit := text[:split], text[split:]
	mangled := mangleNumber(num)
	if mangled == "0" && lengthUnits[strings.ToLower(unit)] {
		return "0"
	}
	return mangled + unit
}

// mangleHexColor lowercases a hex color and folds doubled digits.
func mangleHexColor(text string) string {
	body := strings.ToLower(strings.TrimPrefix(text, "#"))
	if !isHex(body) {
		return text
	}
	switch len(body) {
	case 6:
		if body[0] == body[1] && body[2] == body[3] && body[4] == body[5] {
			return "#" + string([]byte{body[0], body[2], body[4]})
		}
	case 8:
		if body[0] == body[1] && body[2] == body[3] && body[4] == body[5] && body[6] == body[7] {
			return "#" + string([]byte{body[0], body[2], body[4], body[6]})
		}
	}
	return "#" + body
}

// isHex reports whether s is entirely hex digits.
func isHex(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

// collapseRGBCall folds rgb(R,G,B) with integer channels into a hex color.
// Returns the replacement text and the index of the closing paren.
func collapseRGBCall(tokens []Token, start int) (string, int, bool) {
	name := strings.ToLower(strings.TrimSuffix(tokens[start].Text, "("))
	if name != "rgb" {
		return "", 0, false
	}
	var channels []float64
	i := start + 1
	for ; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case TWhitespace, TComment, TComma:
			continue
		case TNumber:
			v, err := strconv.ParseFloat(tokens[i].Text, 64)
			if err != nil || v != float64(int(v)) || v < 0 || v > 255 {
				return "", 0, false
			}
			channels = append(channels, v)
		case TCloseParen:
			if len(channels) != 3 {
				return "", 0, false
			}
			c := colorful.Color{R: channels[0] / 255, G: channels[1] / 255, B: channels[2] / 255}
			return mangleHexColor(c.Hex()), i, true
		default:
			return "", 0, false
		}
	}
	return "", 0, false
}
