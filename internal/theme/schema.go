/*
  File: schema.go
  Purpose: Structural validation of theme JSON documents.
  Author: taikocss project
  Notes: The schema mirrors the theme contract: token groups of string or
         number leaves, plus the reserved colorSchemes subtree.
*/

package theme

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// leafSchema matches a single token value.
var leafSchema = &jsonschema.Schema{
	AnyOf: []*jsonschema.Schema{
		{Type: "string"},
		{Type: "number"},
	},
}

// groupSchema matches a flat token group.
var groupSchema = &jsonschema.Schema{
	Type:                 "object",
	AdditionalProperties: leafSchema,
}

// schemeTokensSchema matches the token groups inside one scheme mode.
var schemeTokensSchema = &jsonschema.Schema{
	Type:                 "object",
	AdditionalProperties: groupSchema,
}

// themeSchema is the full structural contract for a theme document. The
// reserved colorSchemes key maps scheme names to optional light/dark modes;
// every other key is a token group.
var themeSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"colorSchemes": {
			Type: "object",
			AdditionalProperties: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"light": schemeTokensSchema,
					"dark":  schemeTokensSchema,
				},
				AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
			},
		},
	},
	AdditionalProperties: groupSchema,
}

// validate checks a decoded theme document against the structural schema.
func validate(raw map[string]any) error {
	resolved, err := themeSchema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("failed to resolve theme schema: %w", err)
	}
	if err := resolved.Validate(raw); err != nil {
		return fmt.Errorf("theme does not match expected structure: %w", err)
	}
	return nil
}
