package schedule

import (
	"errors"
	"fmt"
)

// SchemaError reports a schedule document that does not match the expected shape.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schedule schema violation at %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func schemaErrorf(path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Err: fmt.Errorf(format, args...)}
}

// AsSchemaError unwraps a SchemaError if present.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
