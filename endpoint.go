package apiclient

import (
	"fmt"
	"strings"
)

// Method is an HTTP method supported by the registry.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists the supported methods in facade order.
var Methods = []Method{MethodGet, MethodPost, MethodPatch, MethodPut, MethodDelete}

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported method %q", s)
}

// Parameter part names, as they appear in issue paths.
const (
	PartPath   = "path"
	PartQuery  = "query"
	PartBody   = "body"
	PartHeader = "header"
)

// ParameterSchema describes the four optional parts of an endpoint's parameters.
// A nil part is not declared; callers' values for undeclared parts are dropped.
//
// A declared part is required unless every field in it is optional.
type ParameterSchema struct {
	Path   *Schema
	Query  *Schema
	Body   *Schema
	Header *Schema
}

// schema combines the declared parts into a single object schema.
func (p ParameterSchema) schema() *Schema {
	var fields []Field
	add := func(name string, s *Schema) {
		if s == nil {
			return
		}
		fields = append(fields, Field{
			Name:     name,
			Schema:   s,
			Optional: s.Kind == KindObject && s.allOptional(),
		})
	}
	add(PartPath, p.Path)
	add(PartQuery, p.Query)
	add(PartBody, p.Body)
	add(PartHeader, p.Header)
	return Object(fields...)
}

// EndpointDefinition is the static description of one (method, path template) pair.
type EndpointDefinition struct {
	Method Method
	// Path is the URL path template, e.g. "/todos/{todoId}".
	Path string

	// Name is an optional operation identifier, e.g. "getTodo".
	Name    string
	Summary string

	Parameters ParameterSchema
	Response   *Schema
}

// ID returns "METHOD /path/template".
func (d *EndpointDefinition) ID() string {
	return string(d.Method) + " " + d.Path
}

func (d *EndpointDefinition) String() string {
	return d.ID()
}

// PathTokens returns the {name} placeholders of a path template in order.
func PathTokens(template string) ([]string, error) {
	var tokens []string
	rest := template
	for {
		open := strings.IndexAny(rest, "{}")
		if open < 0 {
			return tokens, nil
		}
		if rest[open] == '}' {
			return nil, fmt.Errorf("path template %q: unexpected '}'", template)
		}
		end := strings.IndexAny(rest[open+1:], "{}")
		if end < 0 || rest[open+1+end] != '}' {
			return nil, fmt.Errorf("path template %q: unterminated '{'", template)
		}
		name := rest[open+1 : open+1+end]
		if !isTokenName(name) {
			return nil, fmt.Errorf("path template %q: invalid placeholder %q", template, name)
		}
		tokens = append(tokens, name)
		rest = rest[open+1+end+1:]
	}
}

// isTokenName matches the \w+ placeholder names accepted by the resolver.
func isTokenName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && (r < '0' || r > '9') && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// check validates a definition's internal consistency.
func (d *EndpointDefinition) check() error {
	if _, err := ParseMethod(string(d.Method)); err != nil {
		return err
	}
	if d.Method != Method(strings.ToUpper(string(d.Method))) {
		return fmt.Errorf("method %q must be upper case", d.Method)
	}
	if !strings.HasPrefix(d.Path, "/") {
		return fmt.Errorf("path template %q must start with '/'", d.Path)
	}
	tokens, err := PathTokens(d.Path)
	if err != nil {
		return err
	}
	parts := []struct {
		name   string
		schema *Schema
	}{
		{PartPath, d.Parameters.Path},
		{PartQuery, d.Parameters.Query},
		{PartHeader, d.Parameters.Header},
	}
	for _, part := range parts {
		if part.schema != nil && part.schema.Kind != KindObject {
			return fmt.Errorf("%s parameters must be an object schema, got %s", part.name, part.schema.Kind)
		}
	}

	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			return fmt.Errorf("path template %q repeats placeholder {%s}", d.Path, tok)
		}
		seen[tok] = true
		f, ok := d.Parameters.Path.Field(tok)
		if !ok {
			return fmt.Errorf("placeholder {%s} has no path parameter", tok)
		}
		if f.Optional {
			return fmt.Errorf("path parameter %q must be required", tok)
		}
	}
	if d.Parameters.Path != nil {
		for _, f := range d.Parameters.Path.Fields {
			if !seen[f.Name] {
				return fmt.Errorf("path parameter %q is not used by template %q", f.Name, d.Path)
			}
		}
	}

	if d.Response == nil {
		return fmt.Errorf("missing response schema")
	}
	for _, s := range []*Schema{d.Parameters.schema(), d.Response} {
		if err := checkRules(s); err != nil {
			return err
		}
	}
	return nil
}
