package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedSegment is returned when a quoted string or bracketed
	// span never finds its closing character before end of input.
	ErrUnterminatedSegment = errors.New("unterminated segment")

	// ErrMalformedManifest is returned when a field block does not close
	// properly or input ends inside one.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrUnexpectedCharacter is returned for an invalid leading character
	// inside a field block.
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// ErrExpectedCharacter is returned when a required '=', '"' or ';' is missing.
	ErrExpectedCharacter = errors.New("expected character")

	// ErrEmptyField is returned when a declaration has an empty type, key or path.
	ErrEmptyField = errors.New("empty field")

	// ErrDuplicateKey is returned when two declarations share a key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Error is a manifest diagnostic tied to a source line.
type Error struct {
	Kind   error
	Source string
	Line   int
	Msg    string
}

func (e *Error) Error() string {
	src := e.Source
	if src == "" {
		src = "<manifest>"
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s:%d: %v", src, e.Line, e.Kind)
	}
	return fmt.Sprintf("%s:%d: %v: %s", src, e.Line, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, line int, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
	}
}
