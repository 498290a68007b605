/*
  File: lower.go
  Purpose: Style-object to raw CSS text lowering.
  Author: taikocss project
  Notes: Produces readable raw CSS; the processor owns minification. Key
         classification follows the authoring contract: at-rules keep the
         outer selector, selector keys compose through &, everything else
         is a camelCase property.
*/

package lowering

import "strings"

// unitlessProperties is the closed set of properties whose numeric values
// never receive a px suffix. Lookup is on the kebab-case form.
var unitlessProperties = map[string]bool{
	"opacity":           true,
	"z-index":           true,
	"line-height":       true,
	"flex":              true,
	"flex-grow":         true,
	"flex-shrink":       true,
	"order":             true,
	"font-weight":       true,
	"tab-size":          true,
	"orphans":           true,
	"widows":            true,
	"counter-increment": true,
	"counter-reset":     true,
}

// Lower converts a style object into raw CSS text under the given outer
// selector. An empty selector lowers for global emission, where only
// selector and at-rule keys make sense.
func Lower(obj *StyleObject, selector string) string {
	var sb strings.Builder
	lowerBlock(&sb, obj, selector)
	return sb.String()
}

// lowerBlock emits the declarations of obj as one rule block followed by
// its nested blocks, in source order within each group.
func lowerBlock(sb *strings.Builder, obj *StyleObject, selector string) {
	var decls []string
	type nested struct {
		atRule   string
		selector string
		obj      *StyleObject
	}
	var blocks []nested

	for _, entry := range obj.Entries {
		if entry.Val.Kind == ValueObject {
			if strings.HasPrefix(entry.Key, "@") {
				blocks = append(blocks, nested{atRule: entry.Key, selector: selector, obj: entry.Val.Obj})
			} else {
				blocks = append(blocks, nested{selector: composeSelector(selector, entry.Key), obj: entry.Val.Obj})
			}
			continue
		}
		if decl, ok := lowerDeclaration(entry.Key, entry.Val); ok {
			decls = append(decls, decl)
		}
	}

	if len(decls) > 0 {
		if selector != "" {
			sb.WriteString(selector)
			sb.WriteString("{")
		}
		sb.WriteString(strings.Join(decls, ";"))
		if selector != "" {
			sb.WriteString("}")
		}
		sb.WriteString("\n")
	}

	for _, block := range blocks {
		if block.atRule != "" {
			sb.WriteString(block.atRule)
			sb.WriteString("{\n")
			lowerBlock(sb, block.obj, block.selector)
			sb.WriteString("}\n")
			continue
		}
		lowerBlock(sb, block.obj, block.selector)
	}
}

// lowerDeclaration renders one property declaration. Null values are
// dropped; numeric values follow the px policy.
func lowerDeclaration(key string, val Value) (string, bool) {
	prop := CamelToKebab(key)
	switch val.Kind {
	case ValueNull:
		return "", false
	case ValueString:
		return prop + ":" + val.Str, true
	case ValueNumber:
		return prop + ":" + NumberToCSS(prop, val.Num), true
	}
	return "", false
}

// NumberToCSS applies the unit policy: zero stays bare, unitless properties
// stay bare, everything else gets px.
func NumberToCSS(kebabProp string, n float64) string {
	text := FormatNumber(n)
	if n == 0 || unitlessProperties[kebabProp] {
		return text
	}
	return text + "px"
}

// CamelToKebab converts a camelCase property name by inserting a hyphen
// before each uppercase letter and lowercasing it. A leading uppercase
// letter yields a leading hyphen, which is how vendor-prefixed names
// (WebkitMask) are authored.
func CamelToKebab(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('-')
			sb.WriteByte(c - 'A' + 'a')
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// composeSelector resolves a nested selector key against the outer
// selector: every & is replaced, and a key without & becomes a descendant.
func composeSelector(outer, key string) string {
	if strings.Contains(key, "&") {
		return strings.ReplaceAll(key, "&", outer)
	}
	if outer == "" {
		return key
	}
	return outer + " " + key
}
