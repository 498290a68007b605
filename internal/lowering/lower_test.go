/*
  File: lower_test.go
  Purpose: Unit tests for style-object lowering.
  Author: taikocss project
  Notes: Raw output is asserted before minification, so expectations keep
         the lowering's own newlines.
*/

package lowering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// obj is a test helper building a StyleObject from pairs.
func obj(entries ...Entry) *StyleObject {
	return &StyleObject{Entries: entries}
}

// TestLowerBasicDeclarations tests property rendering and ordering.
func TestLowerBasicDeclarations(t *testing.T) {
	css := Lower(obj(
		Entry{"color", StringValue("red")},
		Entry{"paddingLeft", NumberValue(8)},
	), ".cls_x")
	assert.Equal(t, ".cls_x{color:red;padding-left:8px}\n", css)
}

// TestLowerUnitPolicy tests the px suffix rules.
func TestLowerUnitPolicy(t *testing.T) {
	css := Lower(obj(
		Entry{"padding", NumberValue(0)},
		Entry{"opacity", NumberValue(0.5)},
		Entry{"width", NumberValue(16)},
		Entry{"zIndex", NumberValue(10)},
		Entry{"lineHeight", NumberValue(1.5)},
		Entry{"flexGrow", NumberValue(2)},
	), ".c")
	assert.Contains(t, css, "padding:0;")
	assert.Contains(t, css, "opacity:0.5;")
	assert.Contains(t, css, "width:16px;")
	assert.Contains(t, css, "z-index:10;")
	assert.Contains(t, css, "line-height:1.5;")
	assert.Contains(t, css, "flex-grow:2")
}

// TestLowerSkipsNull tests null/undefined elision.
func TestLowerSkipsNull(t *testing.T) {
	css := Lower(obj(
		Entry{"color", NullValue()},
		Entry{"margin", NumberValue(4)},
	), ".c")
	assert.Equal(t, ".c{margin:4px}\n", css)
}

// TestLowerNestedSelector tests & substitution and descendant joining.
func TestLowerNestedSelector(t *testing.T) {
	css := Lower(obj(
		Entry{"color", StringValue("red")},
		Entry{"&:hover", ObjectValue(obj(Entry{"color", StringValue("blue")}))},
		Entry{".icon", ObjectValue(obj(Entry{"fill", StringValue("currentColor")}))},
	), ".cls_x")
	assert.Contains(t, css, ".cls_x{color:red}\n")
	assert.Contains(t, css, ".cls_x:hover{color:blue}\n")
	assert.Contains(t, css, ".cls_x .icon{fill:currentColor}\n")
}

// TestLowerMultipleAmpersands tests that every & is replaced.
func TestLowerMultipleAmpersands(t *testing.T) {
	css := Lower(obj(
		Entry{"& + &", ObjectValue(obj(Entry{"marginTop", NumberValue(8)}))},
	), ".c")
	assert.Contains(t, css, ".c + .c{margin-top:8px}")
}

// TestLowerAtRule tests at-rule wrapping with the unchanged outer selector.
func TestLowerAtRule(t *testing.T) {
	css := Lower(obj(
		Entry{"color", StringValue("red")},
		Entry{"@media (min-width: 700px)", ObjectValue(obj(
			Entry{"color", StringValue("blue")},
		))},
	), ".cls_x")
	assert.Contains(t, css, ".cls_x{color:red}\n")
	assert.Contains(t, css, "@media (min-width: 700px){\n.cls_x{color:blue}\n}\n")
}

// TestLowerNestedAtRuleInSelector tests at-rules under a nested selector.
func TestLowerNestedAtRuleInSelector(t *testing.T) {
	css := Lower(obj(
		Entry{"&:hover", ObjectValue(obj(
			Entry{"@media (hover: hover)", ObjectValue(obj(
				Entry{"color", StringValue("blue")},
			))},
		))},
	), ".c")
	assert.Contains(t, css, "@media (hover: hover){\n.c:hover{color:blue}\n}")
}

// TestLowerGlobalSelectorKeys tests lowering with an empty outer selector.
func TestLowerGlobalSelectorKeys(t *testing.T) {
	css := Lower(obj(
		Entry{"body", ObjectValue(obj(Entry{"margin", NumberValue(0)}))},
	), "")
	assert.Equal(t, "body{margin:0}\n", css)
}

// TestCamelToKebab tests property-name conversion.
func TestCamelToKebab(t *testing.T) {
	assert.Equal(t, "color", CamelToKebab("color"))
	assert.Equal(t, "padding-left", CamelToKebab("paddingLeft"))
	assert.Equal(t, "z-index", CamelToKebab("zIndex"))
	assert.Equal(t, "-webkit-mask", CamelToKebab("WebkitMask"))
	assert.Equal(t, "grid-template-columns", CamelToKebab("gridTemplateColumns"))
}

// TestNumberToCSS tests boundary rendering.
func TestNumberToCSS(t *testing.T) {
	assert.Equal(t, "0", NumberToCSS("padding", 0))
	assert.Equal(t, "16px", NumberToCSS("width", 16))
	assert.Equal(t, "0.5", NumberToCSS("opacity", 0.5))
	assert.Equal(t, "2.25px", NumberToCSS("margin", 2.25))
	assert.NotContains(t, NumberToCSS("width", 16), ".0")
}

// TestLowerDeclarationOrderStable tests that entries keep source order.
func TestLowerDeclarationOrderStable(t *testing.T) {
	css := Lower(obj(
		Entry{"zIndex", NumberValue(1)},
		Entry{"color", StringValue("red")},
		Entry{"margin", NumberValue(2)},
	), ".c")
	zi := strings.Index(css, "z-index")
	co := strings.Index(css, "color")
	ma := strings.Index(css, "margin")
	assert.True(t, zi < co && co < ma, "declarations must keep source order")
}
