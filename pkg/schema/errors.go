package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/value"
)

// ErrInvalidState is matched by AggregateError.
var ErrInvalidState = errors.New("state does not match schema")

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string      // Field name
	Reason string      // Human-readable reason for failure
	Value  value.Value // The value that failed validation; null when absent
}

func (e *ValidationError) Error() string {
	if e.Value.IsNull() {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %s)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *AggregateError) Is(target error) bool { return target == ErrInvalidState }

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
