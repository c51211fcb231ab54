package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLine marks a line holding nothing but whitespace
	ErrEmptyLine = errors.New("empty line")
	// ErrNotJSON marks a line that is not a well-formed JSON document
	ErrNotJSON = errors.New("not a JSON document")
	// ErrNotObject marks a JSON document whose top level is not an object
	ErrNotObject = errors.New("JSON document is not an object")

	ErrMissing          = errors.New("missing field")
	ErrNotString        = errors.New("expected a string")
	ErrUnknownTransport = errors.New("unknown transport")
)

// FieldError reports which field failed to decode
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
