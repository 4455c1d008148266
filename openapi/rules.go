package openapi

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// rule is a single validation rule from a validator tag.
type rule struct {
	// Name is the rule name (e.g., "min", "gte", "email").
	Name string

	// Param is the value after "=", empty if none.
	// For "min=8", Param is "8".
	Param string
}

// parseRules parses a validator tag string into rules.
// Input: "required,email,min=8"
// Output: []rule{{Name:"required"}, {Name:"email"}, {Name:"min", Param:"8"}}
func parseRules(tag string) []rule {
	if tag == "" {
		return nil
	}

	parts := strings.Split(tag, ",")
	rules := make([]rule, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		r := rule{}
		if idx := strings.Index(part, "="); idx > 0 {
			r.Name = part[:idx]
			r.Param = part[idx+1:]
		} else {
			r.Name = part
		}
		rules = append(rules, r)
	}

	return rules
}

// apply maps a rule onto the equivalent OpenAPI keyword.
// It reports false for rules with no OpenAPI equivalent.
func (r rule) apply(s *openapi3.Schema, isString bool) bool {
	switch r.Name {
	case "email":
		s.Format = "email"
		return true
	case "url", "uri":
		s.Format = "uri"
		return true
	case "uuid":
		s.Format = "uuid"
		return true
	case "oneof":
		for _, v := range strings.Fields(r.Param) {
			if isString {
				s.Enum = append(s.Enum, v)
			} else if f, err := strconv.ParseFloat(v, 64); err == nil {
				s.Enum = append(s.Enum, f)
			}
		}
		return true
	case "required":
		if isString {
			s.MinLength = 1
		}
		return true
	}

	if isString {
		n, err := strconv.ParseUint(r.Param, 10, 64)
		if err != nil {
			return false
		}
		switch r.Name {
		case "min":
			s.MinLength = n
		case "max":
			s.MaxLength = &n
		case "len":
			s.MinLength = n
			s.MaxLength = &n
		default:
			return false
		}
		return true
	}

	f, err := strconv.ParseFloat(r.Param, 64)
	if err != nil {
		return false
	}
	switch r.Name {
	case "min", "gte":
		s.Min = &f
	case "max", "lte":
		s.Max = &f
	case "gt":
		s.Min = &f
		s.ExclusiveMin = true
	case "lt":
		s.Max = &f
		s.ExclusiveMax = true
	case "eq":
		s.Enum = append(s.Enum, f)
	default:
		return false
	}
	return true
}
