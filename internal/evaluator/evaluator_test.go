/*
  File: evaluator_test.go
  Purpose: Unit tests for the static evaluator on real parse trees.
  Author: taikocss project
  Notes: Tests reach the evaluator the way the transform does: parse a
         css() call, hand its object literal to EvalObject.
*/

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taikocss/internal/diag"
	"taikocss/internal/jsparser"
	"taikocss/internal/lowering"
	"taikocss/internal/position"
	"taikocss/internal/theme"
)

// setup parses source and returns an evaluator over the first css() call's
// object argument.
func setup(t *testing.T, source, themeJSON, themeBinding string) (*Evaluator, *lowering.StyleObject, error) {
	t.Helper()
	src, err := jsparser.Parse("test.ts", []byte(source))
	require.NoError(t, err)
	t.Cleanup(src.Close)
	require.False(t, src.HasSyntaxErrors())

	th, err := theme.Parse(themeJSON)
	require.NoError(t, err)

	sites := jsparser.FindCalls(src)
	require.NotEmpty(t, sites)
	args := jsparser.Arguments(sites[0].Node)
	require.Len(t, args, 1)

	ev := &Evaluator{
		Source:            src,
		Pos:               position.NewMap(src.Bytes),
		Theme:             th,
		Subsystem:         diag.SubsystemCSS,
		ThemeBinding:      themeBinding,
		Keyframes:         map[string]string{"fade": "kf_00000001"},
		DeclaredKeyframes: map[string]bool{"fade": true, "later": true},
	}
	obj, evalErr := ev.EvalObject(args[0])
	return ev, obj, evalErr
}

// entryMap flattens top-level entries for assertions.
func entryMap(obj *lowering.StyleObject) map[string]lowering.Value {
	out := make(map[string]lowering.Value)
	for _, entry := range obj.Entries {
		out[entry.Key] = entry.Val
	}
	return out
}

// TestEvalObjectLiterals tests string, number, and null leaves.
func TestEvalObjectLiterals(t *testing.T) {
	_, obj, err := setup(t, `css({ color: 'red', width: 16, flex: null, "marginTop": 4 })`, "", "")
	require.NoError(t, err)

	entries := entryMap(obj)
	assert.Equal(t, lowering.StringValue("red"), entries["color"])
	assert.Equal(t, lowering.NumberValue(16), entries["width"])
	assert.Equal(t, lowering.NullValue(), entries["flex"])
	assert.Equal(t, lowering.NumberValue(4), entries["marginTop"])
}

// TestEvalNegativeNumbers tests unary minus on numeric literals.
func TestEvalNegativeNumbers(t *testing.T) {
	_, obj, err := setup(t, `css({ marginLeft: -4, top: -0.5 })`, "", "")
	require.NoError(t, err)

	entries := entryMap(obj)
	assert.Equal(t, lowering.NumberValue(-4), entries["marginLeft"])
	assert.Equal(t, lowering.NumberValue(-0.5), entries["top"])
}

// TestEvalThemeArithmetic tests member chains with all four operators.
func TestEvalThemeArithmetic(t *testing.T) {
	themeJSON := `{"spacing":{"unit":8}}`
	_, obj, err := setup(t, `css({
		a: theme.spacing.unit + 2,
		b: theme.spacing.unit - 2,
		c: theme.spacing.unit * 2,
		d: theme.spacing.unit / 2,
	})`, themeJSON, "theme")
	require.NoError(t, err)

	entries := entryMap(obj)
	assert.Equal(t, lowering.NumberValue(10), entries["a"])
	assert.Equal(t, lowering.NumberValue(6), entries["b"])
	assert.Equal(t, lowering.NumberValue(16), entries["c"])
	assert.Equal(t, lowering.NumberValue(4), entries["d"])
}

// TestEvalTemplatesAndConcat tests template literals and string +.
func TestEvalTemplatesAndConcat(t *testing.T) {
	themeJSON := `{"colors":{"line":"gray"},"spacing":{"unit":4}}`
	_, obj, err := setup(t, "css({ border: '1px solid ' + theme.colors.line, padding: `${theme.spacing.unit * 2}px` })", themeJSON, "theme")
	require.NoError(t, err)

	entries := entryMap(obj)
	assert.Equal(t, lowering.StringValue("1px solid gray"), entries["border"])
	assert.Equal(t, lowering.StringValue("8px"), entries["padding"])
}

// TestEvalKeyframesIdentifier tests table resolution and forward refs.
func TestEvalKeyframesIdentifier(t *testing.T) {
	_, obj, err := setup(t, "css({ animation: `${fade} 1s` })", "", "")
	require.NoError(t, err)
	assert.Equal(t, lowering.StringValue("kf_00000001 1s"), entryMap(obj)["animation"])

	_, _, err = setup(t, "css({ animation: `${later} 1s` })", "", "")
	require.Error(t, err)
	var dErr *diag.Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, diag.ForwardKeyframesReference, dErr.Kind)
}

// TestEvalNestedObjects tests nested selector and at-rule values.
func TestEvalNestedObjects(t *testing.T) {
	_, obj, err := setup(t, `css({ color: 'red', '&:hover': { color: 'blue' } })`, "", "")
	require.NoError(t, err)

	entries := entryMap(obj)
	nested := entries["&:hover"]
	require.Equal(t, lowering.ValueObject, nested.Kind)
	assert.Equal(t, lowering.StringValue("blue"), entryMap(nested.Obj)["color"])
}

// TestEvalErrorKinds tests the diagnostic classification table.
func TestEvalErrorKinds(t *testing.T) {
	cases := []struct {
		name   string
		source string
		theme  string
		bind   string
		kind   diag.Kind
	}{
		{"unknown identifier", `css({ color: someVar })`, "", "", diag.DynamicValue},
		{"ternary", `css({ color: x ? 'a' : 'b' })`, "", "", diag.UnsupportedExpression},
		{"computed member", `css({ color: theme.colors[k] })`, `{"colors":{"a":"b"}}`, "theme", diag.UnsupportedExpression},
		{"modulo", `css({ width: theme.spacing.unit % 2 })`, `{"spacing":{"unit":8}}`, "theme", diag.UnsupportedExpression},
		{"missing path", `css({ color: theme.colors.nope })`, `{"colors":{"a":"b"}}`, "theme", diag.UnknownThemePath},
		{"bare theme", `css({ color: theme })`, `{"colors":{"a":"b"}}`, "theme", diag.UnknownThemePath},
		{"call value", `css({ color: rgb(0) })`, "", "", diag.UnsupportedExpression},
		{"bad spread", `css({ ...rest })`, "", "", diag.BadSpread},
		{"spread call", `css({ ...clamp(1) })`, "", "", diag.BadSpread},
		{"computed key", `css({ [k]: 'red' })`, "", "", diag.UnsupportedExpression},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := setup(t, tc.source, tc.theme, tc.bind)
			require.Error(t, err)
			var dErr *diag.Error
			require.ErrorAs(t, err, &dErr)
			assert.Equal(t, tc.kind, dErr.Kind)
			assert.Regexp(t, `^test\.ts:\d+:\d+: `, dErr.Error())
		})
	}
}

// TestEvalStringEscapes tests escape decoding in string literals.
func TestEvalStringEscapes(t *testing.T) {
	_, obj, err := setup(t, `css({ content: '\'x\'' })`, "", "")
	require.NoError(t, err)
	assert.Equal(t, lowering.StringValue("'x'"), entryMap(obj)["content"])
}

// TestUnescapeHelper tests the escape table directly.
func TestUnescapeHelper(t *testing.T) {
	assert.Equal(t, "\n", unescape(`\n`))
	assert.Equal(t, "\t", unescape(`\t`))
	assert.Equal(t, `\`, unescape(`\\`))
	assert.Equal(t, `"`, unescape(`\"`))
	assert.Equal(t, `A`, unescape(`A`), "non-escape input is unchanged")
	assert.Equal(t, `\u0041`, unescape(`\u0041`), "unicode escapes pass through")
}

// TestParseNumberHelper tests separator tolerance.
func TestParseNumberHelper(t *testing.T) {
	n, err := parseNumber("1_000")
	require.NoError(t, err)
	assert.Equal(t, float64(1000), n)

	_, err = parseNumber("0x10")
	assert.Error(t, err)
}
