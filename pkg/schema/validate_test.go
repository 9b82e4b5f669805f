package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/espalier/pkg/value"
)

func TestValidate_Success(t *testing.T) {
	s := Schema{
		"page":    Int(),
		"ratio":   Float(),
		"enabled": Bool(),
		"tags":    List(String()),
		"query":   Optional(String()),
	}

	data := value.ObjectOf(
		"page", 2,
		"ratio", 0.5,
		"enabled", true,
		"tags", []string{"prod", "critical"},
		"extra", "ignored",
	)

	if err := Validate(s, data); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	if err := Validate(nil, value.ObjectOf("a", 1)); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_MissingField(t *testing.T) {
	s := Schema{"page": Int(), "query": Optional(String())}

	err := Validate(s, value.NewObject())
	if err == nil {
		t.Fatal("Validate() should return error for missing field")
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("error should match ErrInvalidState, got %v", err)
	}

	errs := ValidationErrors(err)
	if len(errs) != 1 {
		t.Fatalf("Validate() = %d errors, want 1", len(errs))
	}

	var validErr *ValidationError
	if !errors.As(errs[0], &validErr) {
		t.Fatalf("error should be *ValidationError, got %T", errs[0])
	}
	if validErr.Key != "page" || validErr.Reason != "required" {
		t.Errorf("got %+v, want required page", validErr)
	}
}

func TestValidate_MultipleErrorsSorted(t *testing.T) {
	s := Schema{"b": Int(), "a": String(), "c": Bool()}
	data := value.ObjectOf("a", 1, "b", "x", "c", true)

	err := Validate(s, data)
	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("Validate() = %d errors, want 2", len(errs))
	}
	if !strings.Contains(errs[0].Error(), `"a"`) || !strings.Contains(errs[1].Error(), `"b"`) {
		t.Errorf("errors not in field order: %v", errs)
	}
	if !strings.HasPrefix(err.Error(), "2 validation errors") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidationErrors_NonAggregate(t *testing.T) {
	if errs := ValidationErrors(errors.New("boom")); errs != nil {
		t.Errorf("ValidationErrors() = %v, want nil", errs)
	}
}
