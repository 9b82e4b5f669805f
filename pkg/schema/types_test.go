package schema

import (
	"fmt"
	"testing"

	"github.com/aretw0/espalier/pkg/value"
)

func TestBuiltinTypes(t *testing.T) {
	tests := []struct {
		typ     Type
		name    string
		value   value.Value
		wantErr bool
	}{
		{String(), "string", value.String("hello"), false},
		{String(), "string", value.String(""), false},
		{String(), "string", value.Int(42), true},
		{String(), "string", value.Null(), true},
		{Int(), "int", value.Int(42), false},
		{Int(), "int", value.Number(42.0), false},
		{Int(), "int", value.Number(42.5), true},
		{Int(), "int", value.String("42"), true},
		{Float(), "float", value.Number(3.14), false},
		{Float(), "float", value.Int(3), false},
		{Float(), "float", value.Bool(true), true},
		{Bool(), "bool", value.Bool(false), false},
		{Bool(), "bool", value.Null(), true},
		{List(Int()), "[int]", value.List(value.Int(1), value.Int(2)), false},
		{List(Int()), "[int]", value.List(value.Int(1), value.String("x")), true},
		{List(Int()), "[int]", value.Int(1), true},
		{Optional(Int()), "int?", value.Null(), false},
		{Optional(Int()), "int?", value.Int(1), false},
		{Optional(Int()), "int?", value.String("1"), true},
	}

	for _, tt := range tests {
		if tt.typ.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", tt.typ.Name(), tt.name)
		}
		err := tt.typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s.Validate(%s) error = %v, wantErr %v", tt.name, tt.value, err, tt.wantErr)
		}
	}
}

func TestOptional_Idempotent(t *testing.T) {
	typ := Optional(Optional(String()))
	if typ.Name() != "string?" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "string?")
	}
}

func TestCustomType(t *testing.T) {
	positive := Custom("positive_int", func(v value.Value) error {
		n, ok := v.AsInt()
		if !ok || n <= 0 {
			return fmt.Errorf("must be a positive integer")
		}
		return nil
	})

	if positive.Name() != "positive_int" {
		t.Errorf("Name() = %q, want positive_int", positive.Name())
	}
	if err := positive.Validate(value.Int(3)); err != nil {
		t.Errorf("Validate(3) error = %v", err)
	}
	if err := positive.Validate(value.Int(0)); err == nil {
		t.Error("Validate(0) should fail")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantErr  bool
	}{
		{"string", "string", false},
		{"int", "int", false},
		{"float", "float", false},
		{"bool", "bool", false},
		{"[string]", "[string]", false},
		{"[[int]]", "[[int]]", false},
		{"int?", "int?", false},
		{"[int]?", "[int]?", false},
		{" bool ", "bool", false},
		{"uuid", "", true},
		{"[]", "", true},
	}

	for _, tt := range tests {
		typ, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && typ.Name() != tt.wantName {
			t.Errorf("ParseType(%q).Name() = %q, want %q", tt.in, typ.Name(), tt.wantName)
		}
	}
}

func TestParseTypeMap(t *testing.T) {
	s, err := ParseTypeMap(map[string]string{"page": "int", "query": "string?"})
	if err != nil {
		t.Fatalf("ParseTypeMap() error = %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("ParseTypeMap() = %d fields, want 2", len(s))
	}

	if _, err := ParseTypeMap(map[string]string{"page": "integer"}); err == nil {
		t.Error("ParseTypeMap() should reject unknown types")
	}
}
