// Package shape provides declarative parameter contracts for gateway methods.
//
// A Contract describes a mapping of named fields to required or optional typed
// values and validates untyped JSON input against that description. Validation
// returns either the validated params (declared fields only) or a Failure that
// lists every offending field, in declaration order.
package shape

import "strings"

// Contract validates raw params against a declared field shape.
// Validate returns the validated params on success, or a Failure listing
// field-level problems. Describe returns a human-readable restatement of the
// expected shape, e.g. "{p: string, count?: number}".
type Contract interface {
	Validate(raw map[string]any) (map[string]any, *Failure)
	Describe() string
}

// FieldError is one field-level validation problem.
type FieldError struct {
	Name   string
	Reason string
}

// Failure is the outcome of a failed validation. Fields are ordered by the
// contract's field declaration order.
type Failure struct {
	Fields []FieldError
}

// Detail renders the per-field problems, one "name: reason" line per field.
func (f *Failure) Detail() string {
	lines := make([]string, len(f.Fields))
	for i, fe := range f.Fields {
		lines[i] = fe.Name + ": " + fe.Reason
	}
	return strings.Join(lines, "\n")
}

// Details returns the field name to reason mapping.
func (f *Failure) Details() map[string]string {
	details := make(map[string]string, len(f.Fields))
	for _, fe := range f.Fields {
		details[fe.Name] = fe.Reason
	}
	return details
}

// Field declares one named field of an object contract.
type Field struct {
	name     string
	typeName string
	optional bool
	nested   Contract
}

// String declares a required string field.
func String(name string) Field {
	return Field{name: name, typeName: "string"}
}

// Number declares a required number field. JSON numbers arrive as float64.
func Number(name string) Field {
	return Field{name: name, typeName: "number"}
}

// Mapping declares a required object field with no inner constraints.
func Mapping(name string) Field {
	return Field{name: name, typeName: "object"}
}

// Nested declares a required object field validated against an inner contract.
// Inner field problems are reported with dotted names ("outer.inner").
func Nested(name string, inner Contract) Field {
	return Field{name: name, typeName: "object", nested: inner}
}

// Optional marks the field as optional: absent values pass validation and are
// omitted from the validated params.
func (f Field) Optional() Field {
	f.optional = true
	return f
}

type objectContract struct {
	fields []Field
}

// Object builds a contract over the given fields. Unknown keys in the raw
// input are dropped; field order is preserved for failure reporting and for
// Describe.
func Object(fields ...Field) Contract {
	return &objectContract{fields: fields}
}

func (c *objectContract) Validate(raw map[string]any) (map[string]any, *Failure) {
	out := make(map[string]any, len(c.fields))
	var failed []FieldError

	for _, f := range c.fields {
		v, ok := raw[f.name]
		if !ok {
			if f.optional {
				continue
			}
			failed = append(failed, FieldError{Name: f.name, Reason: "Expected " + f.typeName + ", but was missing"})
			continue
		}

		actual := typeName(v)
		if actual != f.typeName {
			failed = append(failed, FieldError{Name: f.name, Reason: "Expected " + f.typeName + ", but was " + actual})
			continue
		}

		if f.nested != nil {
			inner, fail := f.nested.Validate(v.(map[string]any))
			if fail != nil {
				for _, fe := range fail.Fields {
					failed = append(failed, FieldError{Name: f.name + "." + fe.Name, Reason: fe.Reason})
				}
				continue
			}
			out[f.name] = inner
			continue
		}
		out[f.name] = v
	}

	if len(failed) > 0 {
		return nil, &Failure{Fields: failed}
	}
	return out, nil
}

func (c *objectContract) Describe() string {
	parts := make([]string, len(c.fields))
	for i, f := range c.fields {
		name := f.name
		if f.optional {
			name += "?"
		}
		if f.nested != nil {
			parts[i] = name + ": " + f.nested.Describe()
		} else {
			parts[i] = name + ": " + f.typeName
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// typeName reports the JSON type of a decoded value.
func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
