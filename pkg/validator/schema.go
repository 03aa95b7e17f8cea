package validator

import (
	"fmt"

	"github.com/lumenpulse/apikit/pkg/payload"
)

// Type is the declared type of a field.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeAny     Type = "any"
)

// ParseType converts a type name to a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeObject, TypeArray, TypeAny:
		return t, nil
	case "":
		return TypeAny, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Constraint is a named check applied to a coerced field value.
// Check must be safe for concurrent use.
type Constraint struct {
	Name    string
	Message string
	Check   func(payload.Value) bool
}

// Rule builds a custom constraint.
func Rule(name, message string, check func(payload.Value) bool) Constraint {
	return Constraint{Name: name, Message: message, Check: check}
}

// Field describes one property of an object payload.
type Field struct {
	Name        string
	Type        Type
	Required    bool
	Constraints []Constraint

	// Schema describes the members of an object field.
	Schema *Schema

	// Items describes every element of an array field. Its Name is ignored.
	Items *Field

	// Transform is applied to string values before constraints run.
	Transform func(string) string
}

// Schema is an ordered list of field descriptors for an object payload.
// A Schema is read-only once built and can be shared between goroutines.
type Schema struct {
	Fields []Field
}

// NewSchema builds a schema and checks it for structural mistakes.
func NewSchema(fields ...Field) (Schema, error) {
	s := Schema{Fields: fields}
	if err := s.check(""); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Use it for schemas declared at package level.
func MustSchema(fields ...Field) Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Field returns the descriptor with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate is a shorthand for Validate(raw, s).
func (s Schema) Validate(raw payload.Value) (payload.Value, error) {
	return Validate(raw, s)
}

func (s Schema) check(prefix string) error {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		path := joinPath(prefix, f.Name)
		if f.Name == "" {
			return fmt.Errorf("%w: empty field name under %q", ErrInvalidSchema, prefix)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, path)
		}
		seen[f.Name] = struct{}{}
		if err := f.check(path); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) check(path string) error {
	if _, err := ParseType(string(f.Type)); err != nil {
		return fmt.Errorf("%w: field %q", err, path)
	}
	for _, c := range f.Constraints {
		if c.Check == nil {
			return fmt.Errorf("%w: constraint %q on %q has no check", ErrInvalidSchema, c.Name, path)
		}
	}
	switch f.Type {
	case TypeObject:
		if f.Schema == nil {
			return fmt.Errorf("%w: object field %q has no schema", ErrInvalidSchema, path)
		}
		return f.Schema.check(path)
	case TypeArray:
		if f.Items != nil {
			return f.Items.check(path + ".*")
		}
	default:
		if f.Schema != nil || f.Items != nil {
			return fmt.Errorf("%w: %s field %q cannot have nested descriptors", ErrInvalidSchema, f.Type, path)
		}
	}
	return nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
