package domain

import (
	"errors"
	"fmt"

	"github.com/aretw0/espalier/pkg/value"
)

// ErrStop is returned by a handler to end the cycle without rendering or
// sending anything. It is not a failure.
var ErrStop = errors.New("stop")

// ErrMissingField is matched by MissingFieldError.
var ErrMissingField = errors.New("required state field missing")

// ErrEffectDepthExceeded is matched by EffectDepthError.
var ErrEffectDepthExceeded = errors.New("effect dispatch depth exceeded")

// ErrUnknownComponent is returned when an interaction names a component the
// menu does not declare.
var ErrUnknownComponent = errors.New("unknown component")

// ErrInvalidIdentifier is returned for menu ids or component names that are
// empty or contain the identifier delimiter.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// ErrDuplicateMenu is returned when two menus share an id.
var ErrDuplicateMenu = errors.New("duplicate menu id")

// Stop returns ErrStop.
func Stop() error { return ErrStop }

// IsStop reports whether err carries ErrStop.
func IsStop(err error) bool { return errors.Is(err, ErrStop) }

// MissingFieldError is returned by required accessors for absent fields.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("state field %q is required but missing", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// FieldTypeError is returned by typed required accessors when the field holds
// another kind of value.
type FieldTypeError struct {
	Field string
	Want  value.Kind
	Got   value.Kind
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("state field %q: expected %s, got %s", e.Field, e.Want, e.Got)
}

// EffectDepthError records where re-entrant dispatch was cut off.
type EffectDepthError struct {
	Field string
	Depth int
}

func (e *EffectDepthError) Error() string {
	return fmt.Sprintf("effect on %q not dispatched: nesting depth %d reached", e.Field, e.Depth)
}

func (e *EffectDepthError) Is(target error) bool { return target == ErrEffectDepthExceeded }
