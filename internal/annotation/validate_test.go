package annotation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		value string
		valid bool
	}{
		{
			name:  "tool complete",
			kind:  KindTool,
			value: `{"name":"t","description":"d","parameters":{"type":"object","properties":{},"required":[]}}`,
			valid: true,
		},
		{
			name:  "tool missing parameters",
			kind:  KindTool,
			value: `{"name":"t","description":"d"}`,
		},
		{
			name:  "tool null parameters",
			kind:  KindTool,
			value: `{"name":"t","description":"d","parameters":null}`,
		},
		{
			name:  "tool parameters without required list",
			kind:  KindTool,
			value: `{"name":"t","description":"d","parameters":{"type":"object","properties":{}}}`,
		},
		{
			name:  "tool null properties",
			kind:  KindTool,
			value: `{"name":"t","description":"d","parameters":{"type":"object","properties":null,"required":[]}}`,
		},
		{
			name:  "tool array properties",
			kind:  KindTool,
			value: `{"name":"t","description":"d","parameters":{"type":"object","properties":[],"required":[]}}`,
		},
		{
			name:  "tool name not a string",
			kind:  KindTool,
			value: `{"name":3,"description":"d","parameters":{"type":"object","properties":{},"required":[]}}`,
		},
		{
			name:  "tool properties not inspected deeply",
			kind:  KindTool,
			value: `{"name":"t","description":"d","parameters":{"type":"object","properties":{"a":7},"required":["b","b"]}}`,
			valid: true,
		},
		{
			name:  "prompt complete",
			kind:  KindPrompt,
			value: `{"name":"p","description":"d","template":"{{x}}","variables":[]}`,
			valid: true,
		},
		{
			name:  "prompt variables not array",
			kind:  KindPrompt,
			value: `{"name":"p","description":"d","template":"t","variables":"x"}`,
		},
		{
			name:  "resource without handler",
			kind:  KindResource,
			value: `{"name":"r","type":"file","path":"/a"}`,
			valid: true,
		},
		{
			name:  "resource missing path",
			kind:  KindResource,
			value: `{"name":"r","type":"file"}`,
		},
		{
			name:  "array instead of object",
			kind:  KindResource,
			value: `[1,2]`,
		},
		{
			name:  "extra fields allowed",
			kind:  KindResource,
			value: `{"name":"r","type":"file","path":"/a","mime":"text/plain"}`,
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.kind, decode(t, tt.value))
			assert.Equal(t, tt.valid, IsValid(tt.kind, decode(t, tt.value)))
			if tt.valid {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidShape))

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.kind, shapeErr.Kind)
			assert.NotEmpty(t, shapeErr.Reasons)
			assert.NotEmpty(t, shapeErr.Detail())
			assert.Equal(t, "Invalid "+tt.kind.String()+" structure", err.Error())
		})
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	err := Validate(Kind("widget"), map[string]any{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidShape))
	assert.Contains(t, err.Error(), "widget")
}
