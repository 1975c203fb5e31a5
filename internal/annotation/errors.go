package annotation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidJSON marks a block whose repaired text is still not JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrInvalidShape marks a block that parsed but lacks required fields.
	ErrInvalidShape = errors.New("invalid structure")
)

// SyntaxError is returned when strict parsing of a repaired block fails.
// Its message is the JSON parser's own.
type SyntaxError struct {
	Repaired string
	Err      error
}

func (e *SyntaxError) Error() string {
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidJSON
}

// ShapeError is returned when a parsed block fails validation for its kind.
type ShapeError struct {
	Kind    Kind
	Reasons []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("Invalid %s structure", e.Kind)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidShape
}

// Detail joins the individual validation failures.
func (e *ShapeError) Detail() string {
	return strings.Join(e.Reasons, "; ")
}
