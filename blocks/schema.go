package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// contentSchemas documents the JSON shape enforced for each block variant.
// Schemas deliberately allow additional properties so editors can stash
// auxiliary keys without breaking validation.
var contentSchemas = map[Type]map[string]any{
	TypeHeading: {
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]any{
			"text":  map[string]any{"type": "string"},
			"level": map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
		},
	},
	TypeParagraph: {
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
	},
	TypeImage: {
		"type":     "object",
		"required": []string{"src"},
		"properties": map[string]any{
			"src":     map[string]any{"type": "string"},
			"alt":     map[string]any{"type": "string"},
			"caption": map[string]any{"type": "string"},
		},
	},
	TypeVideo: {
		"type":     "object",
		"required": []string{"src"},
		"properties": map[string]any{
			"src":      map[string]any{"type": "string"},
			"caption":  map[string]any{"type": "string"},
			"autoplay": map[string]any{"type": "boolean"},
		},
	},
	TypeCode: {
		"type":     "object",
		"required": []string{"code"},
		"properties": map[string]any{
			"code":     map[string]any{"type": "string"},
			"language": map[string]any{"type": "string"},
		},
	},
	TypeList: {
		"type":     "object",
		"required": []string{"items"},
		"properties": map[string]any{
			"items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"ordered": map[string]any{"type": "boolean"},
		},
	},
	TypeQuote: {
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]any{
			"text":   map[string]any{"type": "string"},
			"author": map[string]any{"type": "string"},
		},
	},
	TypeTable: {
		"type":     "object",
		"required": []string{"headers", "rows"},
		"properties": map[string]any{
			"headers": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"rows": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
	},
	TypeButton: {
		"type":     "object",
		"required": []string{"text", "url"},
		"properties": map[string]any{
			"text":  map[string]any{"type": "string"},
			"url":   map[string]any{"type": "string"},
			"style": map[string]any{"type": "string"},
		},
	},
	TypeSpacer: {
		"type":     "object",
		"required": []string{"height"},
		"properties": map[string]any{
			"height": map[string]any{"type": "integer", "minimum": 0},
		},
	},
	TypeDivider: {
		"type": "object",
	},
}

// ContentSchema returns the JSON schema for a block variant's payload.
func ContentSchema(t Type) (map[string]any, bool) {
	schema, ok := contentSchemas[t]
	return schema, ok
}

// ValidateContent checks a payload against its variant schema. Unknown types
// fail with ErrTypeUnknown; schema violations wrap ErrContentInvalid.
func ValidateContent(t Type, payload map[string]any) error {
	schema, ok := contentSchemas[t]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTypeUnknown, t)
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("blocks: compile %s schema: %w", t, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := compiled.Validate(normalizePayload(payload)); err != nil {
		return fmt.Errorf("%w: %v", ErrContentInvalid, err)
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// normalizePayload round-trips the payload through JSON so typed Go values
// (int, []string) validate the same way decoded documents do.
func normalizePayload(payload map[string]any) any {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return payload
	}
	return out
}
