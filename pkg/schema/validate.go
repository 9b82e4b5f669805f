package schema

import (
	"slices"

	"github.com/aretw0/espalier/pkg/value"
)

// Schema is a map of field names to their expected types.
// Example: {"page": Int(), "query": Optional(String()), "tags": List(String())}
type Schema map[string]Type

// Fields returns the declared field names in sorted order.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks if data conforms to the schema. Fields not named in the
// schema are ignored. All failures are reported in one *AggregateError.
func Validate(schema Schema, data *value.Object) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error
	for _, fieldName := range schema.Fields() {
		fieldType := schema[fieldName]
		v, exists := data.Get(fieldName)
		if !exists {
			if _, optional := fieldType.(*OptionalType); optional {
				continue
			}
			errs = append(errs, &ValidationError{Key: fieldName, Reason: "required"})
			continue
		}

		if err := fieldType.Validate(v); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  v,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
