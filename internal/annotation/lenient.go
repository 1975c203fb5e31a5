package annotation

import (
	"encoding/json"
)

// ParseLenient repairs block and parses it as strict JSON. The returned value
// is an untyped tree of map[string]any, []any and scalars. On failure the
// error is a *SyntaxError matching ErrInvalidJSON.
func ParseLenient(block string) (any, error) {
	repaired := Repair(block)

	var value any
	if err := json.Unmarshal([]byte(repaired), &value); err != nil {
		return nil, &SyntaxError{Repaired: repaired, Err: err}
	}
	return value, nil
}

// ParseBlock parses and validates one raw block as the given kind and
// returns the decoded entity: a Tool, Prompt or Resource.
func ParseBlock(kind Kind, block string) (any, error) {
	value, err := ParseLenient(block)
	if err != nil {
		return nil, err
	}
	if err := Validate(kind, value); err != nil {
		return nil, err
	}

	obj := value.(map[string]any)
	switch kind {
	case KindTool:
		return toolFromObject(obj), nil
	case KindPrompt:
		return promptFromObject(obj), nil
	default:
		return resourceFromObject(obj), nil
	}
}
