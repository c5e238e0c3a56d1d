package schema

import (
	"errors"
	"strings"
)

// ErrInvalidSchema is matched by every SchemaError.
var ErrInvalidSchema = errors.New("deviser: invalid schema")

// SchemaError describes one problem found while loading or validating a schema.
type SchemaError struct {
	Class     string // Class name (if applicable)
	Attribute string // Attribute name (if applicable)
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("deviser: schema error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Attribute != "" {
		b.WriteString(" attribute ")
		b.WriteString(e.Attribute)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(className, attrName, message string, cause error) *SchemaError {
	return &SchemaError{
		Class:     className,
		Attribute: attrName,
		Message:   message,
		Cause:     cause,
	}
}

// IsSchemaError reports whether err is or wraps a schema error.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}

// Problems flattens a joined validation error into its individual schema errors.
func Problems(err error) []*SchemaError {
	if err == nil {
		return nil
	}
	var out []*SchemaError
	var walk func(error)
	walk = func(e error) {
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range j.Unwrap() {
				walk(inner)
			}
			return
		}
		var se *SchemaError
		if errors.As(e, &se) {
			out = append(out, se)
		}
	}
	walk(err)
	return out
}
