package serializer

import (
	"errors"
	"fmt"

	"github.com/meur/dotasource/internal/text"
)

var (
	// ErrMissingField marks a raw field the output schema cannot do without.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownKind is returned for a source kind with no serializer.
	ErrUnknownKind = errors.New("unknown source kind")
	// ErrMalformedMarkup is reported for item description blocks whose <h1>
	// does not read "type: header". Such blocks are skipped.
	ErrMalformedMarkup = text.ErrMalformedMarkup
)

// FieldError reports which entity lacked which field.
type FieldError struct {
	Entity string
	Field  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Entity, e.Field, ErrMissingField)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
