/*
  File: processor.go
  Purpose: CSS processing entry point: validate, minify, lower, map.
  Author: taikocss project
  Notes: The processor is invoked once per extracted rule, never batched,
         so minifier behavior cannot leak across rules.
*/

package cssproc

import (
	"taikocss/internal/position"
	"taikocss/internal/sourcemap"
)

// Direction is the document writing direction forwarded by the host. At the
// fixed browser targets it drives no lowering, but it is part of the
// processor contract and recorded on the options.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Options configures one processing run.
type Options struct {
	// File names the originating source in emitted source maps.
	File string
	// Direction defaults to ltr when empty.
	Direction Direction
	// EmitSourceMap enables V3 CSS map output.
	EmitSourceMap bool
	// Targets defaults to DefaultTargets when zero.
	Targets Targets
}

// Result is the processed output for one rule.
type Result struct {
	// CSS is the minified text.
	CSS string
	// Map is the V3 source-map JSON, empty unless requested.
	Map string
}

// Process validates and minifies one rule's raw CSS text. A SyntaxError is
// returned as-is so the caller can attach source positions.
func Process(raw string, opts Options) (*Result, error) {
	if opts.Targets == (Targets{}) {
		opts.Targets = DefaultTargets
	}
	if opts.Direction == "" {
		opts.Direction = DirectionLTR
	}

	if err := Validate(raw); err != nil {
		return nil, err
	}

	nodes := ParseRules(Tokenize(raw))
	css, rules := Print(nodes, opts.Targets)

	result := &Result{CSS: css}
	if opts.EmitSourceMap {
		mapJSON, err := buildMap(opts.File, raw, css, rules)
		if err != nil {
			return nil, err
		}
		result.Map = mapJSON
	}
	return result, nil
}

// buildMap emits one mapping segment per top-level rule, minified position
// to raw-text position.
func buildMap(file, raw, css string, rules []rulePos) (string, error) {
	rawPos := position.NewMap([]byte(raw))
	genPos := position.NewMap([]byte(css))

	builder := sourcemap.NewBuilder(file, file, raw)
	for _, rule := range rules {
		genLine, genCol := genPos.Lookup(rule.Generated)
		origLine, origCol := rawPos.Lookup(rule.Original)
		builder.AddMapping(sourcemap.Mapping{
			GeneratedLine:   int(genLine) - 1,
			GeneratedColumn: int(genCol) - 1,
			OriginalLine:    int(origLine) - 1,
			OriginalColumn:  int(origCol) - 1,
		})
	}
	return builder.String()
}
