package entry

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax matches parse errors caused by malformed JSON.
	ErrSyntax = errors.New("invalid JSON syntax")
	// ErrSchema matches parse errors on well-formed JSON that is not a log
	// record: not an object, or a required field missing or mistyped.
	ErrSchema = errors.New("invalid log record")
)

// Reason classifies why a line could not be parsed.
type Reason int

const (
	ReasonSyntax Reason = iota
	ReasonNotObject
	ReasonMissingField
	ReasonWrongType
)

// ParseError describes a line that is not a valid log record. It keeps the
// raw text so callers can report it without parsing again.
type ParseError struct {
	Line   int
	Raw    string
	Reason Reason
	Field  string // set for ReasonMissingField and ReasonWrongType
	Got    Type   // actual type for ReasonNotObject and ReasonWrongType
	Cause  error  // decoder error for ReasonSyntax
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case ReasonSyntax:
		if e.Cause == nil {
			return ErrSyntax.Error()
		}
		return fmt.Sprintf("%s: %v", ErrSyntax, e.Cause)
	case ReasonNotObject:
		return fmt.Sprintf("not a JSON object: got %s", e.Got)
	case ReasonMissingField:
		return fmt.Sprintf("missing required field %q", e.Field)
	case ReasonWrongType:
		return fmt.Sprintf("wrong type for field %q: expected string, got %s", e.Field, e.Got)
	default:
		return "parse error"
	}
}

// Is lets errors.Is match ErrSyntax and ErrSchema.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Reason == ReasonSyntax
	case ErrSchema:
		return e.Reason != ReasonSyntax
	}
	return false
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
