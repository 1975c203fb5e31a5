package annotation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// The shape schemas only check presence and primitive type of each required
// field. Nested values such as individual properties are not inspected.
const (
	toolShape = `{
		"type": "object",
		"required": ["name", "description", "parameters"],
		"properties": {
			"name": {"type": "string"},
			"description": {"type": "string"},
			"parameters": {
				"type": "object",
				"required": ["type", "properties", "required"],
				"properties": {
					"type": {"type": "string"},
					"properties": {"type": "object"},
					"required": {"type": "array"}
				}
			}
		}
	}`

	promptShape = `{
		"type": "object",
		"required": ["name", "description", "template", "variables"],
		"properties": {
			"name": {"type": "string"},
			"description": {"type": "string"},
			"template": {"type": "string"},
			"variables": {"type": "array"}
		}
	}`

	resourceShape = `{
		"type": "object",
		"required": ["name", "type", "path"],
		"properties": {
			"name": {"type": "string"},
			"type": {"type": "string"},
			"path": {"type": "string"}
		}
	}`
)

var shapes = map[Kind]*gojsonschema.Schema{
	KindTool:     mustSchema(toolShape),
	KindPrompt:   mustSchema(promptShape),
	KindResource: mustSchema(resourceShape),
}

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("annotation: bad shape schema: %v", err))
	}
	return schema
}

// Validate checks that value has the shape required for kind. A failure is
// a *ShapeError matching ErrInvalidShape.
func Validate(kind Kind, value any) error {
	schema, ok := shapes[kind]
	if !ok {
		return fmt.Errorf("unknown annotation kind %q", kind)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return &ShapeError{Kind: kind, Reasons: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		reasons = append(reasons, re.String())
	}
	return &ShapeError{Kind: kind, Reasons: reasons}
}

// IsValid is Validate as a predicate.
func IsValid(kind Kind, value any) bool {
	return Validate(kind, value) == nil
}
