package apiclient

// Kind is the structural kind of a schema.
type Kind int

const (
	// KindAny accepts any value unchanged.
	KindAny Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBoolean
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "any"
	}
}

// Common refinement rules, expressed as validator tags.
const (
	NonEmpty    = "min=1"
	NonNegative = "gte=0"
)

// Schema describes the expected shape of a value.
//
// Schemas are plain data and are never mutated after construction, so a
// single Schema may be shared by many endpoint definitions.
type Schema struct {
	Kind Kind

	// Fields lists the properties of an object schema in declaration order.
	Fields []Field

	// Items is the element schema of an array schema.
	Items *Schema

	// Rules holds go-playground/validator tags applied to primitive values,
	// e.g. "min=1" for a non-empty string or "gte=0" for a non-negative number.
	Rules string

	// Nullable allows an explicit nil value.
	Nullable bool
}

// Field is a named property of an object schema.
type Field struct {
	Name     string
	Schema   *Schema
	Optional bool
}

// Required declares a required object field.
func Required(name string, s *Schema) Field {
	return Field{Name: name, Schema: s}
}

// Optional declares an optional object field.
func Optional(name string, s *Schema) Field {
	return Field{Name: name, Schema: s, Optional: true}
}

// String returns a string schema with optional validator rules.
func String(rules ...string) *Schema {
	return &Schema{Kind: KindString, Rules: joinRules(rules)}
}

// Number returns a number schema with optional validator rules.
func Number(rules ...string) *Schema {
	return &Schema{Kind: KindNumber, Rules: joinRules(rules)}
}

// Integer returns an integral number schema with optional validator rules.
func Integer(rules ...string) *Schema {
	return &Schema{Kind: KindInteger, Rules: joinRules(rules)}
}

// Boolean returns a boolean schema.
func Boolean() *Schema {
	return &Schema{Kind: KindBoolean}
}

// Any returns a schema that accepts any value.
func Any() *Schema {
	return &Schema{Kind: KindAny}
}

// Object returns an object schema with the given fields.
// An Object with no fields accepts any object and yields an empty one.
func Object(fields ...Field) *Schema {
	return &Schema{Kind: KindObject, Fields: fields}
}

// ArrayOf returns an array schema whose elements match items.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Kind: KindArray, Items: items}
}

// OrNull returns a copy of s that also accepts nil.
func (s *Schema) OrNull() *Schema {
	c := *s
	c.Nullable = true
	return &c
}

// Field returns the named field of an object schema.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// allOptional reports whether every field of an object schema is optional.
func (s *Schema) allOptional() bool {
	for _, f := range s.Fields {
		if !f.Optional {
			return false
		}
	}
	return true
}

func joinRules(rules []string) string {
	out := ""
	for _, r := range rules {
		if r == "" {
			continue
		}
		if out != "" {
			out += ","
		}
		out += r
	}
	return out
}
