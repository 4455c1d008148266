package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationErrors collects every schema violation found in a value.
type ValidationErrors []Issue

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e))
	for _, is := range e {
		fmt.Fprintf(&b, "\n  - %s", is.String())
	}
	return b.String()
}

// Validate checks value against s and returns the validated value.
//
// The result contains exactly the fields the schema declares: unknown object
// keys are dropped, numbers become float64, integers become int64 and
// objects become map[string]any. All violations are reported, not just the
// first; on failure the returned error is ValidationErrors.
func Validate(s *Schema, value any) (any, error) {
	v := &validation{}
	out := v.value(s, "", value)
	if len(v.issues) > 0 {
		return nil, ValidationErrors(v.issues)
	}
	return out, nil
}

type validation struct {
	issues []Issue
}

func (v *validation) fail(path, expected, actual, msg string) {
	v.issues = append(v.issues, Issue{Path: path, Expected: expected, Actual: actual, Message: msg})
}

func (v *validation) mismatch(path string, s *Schema, value any) {
	actual := describe(value)
	v.fail(path, s.Kind.String(), actual, fmt.Sprintf("expected %s, got %s", s.Kind, actual))
}

func (v *validation) value(s *Schema, path string, value any) any {
	if s == nil {
		return value
	}
	if value == nil {
		if s.Nullable || s.Kind == KindAny {
			return nil
		}
		v.mismatch(path, s, nil)
		return nil
	}

	switch s.Kind {
	case KindAny:
		return value
	case KindString:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.String {
			v.mismatch(path, s, value)
			return nil
		}
		str := rv.String()
		v.rules(s, path, str, true)
		return str
	case KindNumber, KindInteger:
		n, ok := toFloat(value)
		if !ok {
			if describe(value) == "number" {
				v.fail(path, s.Kind.String(), describeValue(value), "expected finite "+s.Kind.String())
			} else {
				v.mismatch(path, s, value)
			}
			return nil
		}
		if s.Kind == KindInteger {
			if n != math.Trunc(n) {
				v.fail(path, "integer", formatNumber(n), "expected integer, got "+formatNumber(n))
				return nil
			}
			if n < math.MinInt64 || n >= math.MaxInt64 {
				v.fail(path, "integer", formatNumber(n), "expected integer within int64 range, got "+formatNumber(n))
				return nil
			}
			v.rules(s, path, n, false)
			return int64(n)
		}
		v.rules(s, path, n, false)
		return n
	case KindBoolean:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Bool {
			v.mismatch(path, s, value)
			return nil
		}
		return rv.Bool()
	case KindObject:
		return v.object(s, path, value)
	case KindArray:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			v.mismatch(path, s, value)
			return nil
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = v.value(s.Items, fmt.Sprintf("%s[%d]", path, i), rv.Index(i).Interface())
		}
		return out
	}
	return value
}

func (v *validation) object(s *Schema, path string, value any) any {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		v.mismatch(path, s, value)
		return nil
	}
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		fieldPath := joinPath(path, f.Name)
		mv := rv.MapIndex(reflect.ValueOf(f.Name).Convert(rv.Type().Key()))
		var fv any
		present := mv.IsValid()
		if present {
			fv = mv.Interface()
		}
		// An optional field set to nil is treated as absent.
		nullable := f.Schema != nil && f.Schema.Nullable
		if f.Optional && (!present || (fv == nil && !nullable)) {
			continue
		}
		if !present {
			expected := "value"
			if f.Schema != nil {
				expected = f.Schema.Kind.String()
			}
			v.fail(fieldPath, expected, "missing", "required")
			continue
		}
		out[f.Name] = v.value(f.Schema, fieldPath, fv)
	}
	return out
}

// rules applies validator tags to an already type-checked primitive.
func (v *validation) rules(s *Schema, path string, value any, isString bool) {
	if s.Rules == "" {
		return
	}
	err := validate.Var(value, s.Rules)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.fail(path, s.Rules, describeValue(value), err.Error())
		return
	}
	for _, fe := range fieldErrs {
		expected := fe.Tag()
		if fe.Param() != "" {
			expected += "=" + fe.Param()
		}
		v.fail(path, expected, describeValue(value), formatValidationError(fe, isString))
	}
}

// checkRules reports whether every rule tag in s is known to the validator.
// validator panics on unknown tags, so this runs once at registry build time.
func checkRules(s *Schema) (err error) {
	if s == nil {
		return nil
	}
	if s.Rules != "" {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("invalid rules %q: %v", s.Rules, r)
			}
		}()
		var zero any = ""
		if s.Kind != KindString {
			zero = float64(0)
		}
		_ = validate.Var(zero, s.Rules)
	}
	for _, f := range s.Fields {
		if err := checkRules(f.Schema); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return checkRules(s.Items)
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func toFloat(value any) (float64, bool) {
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	rv := reflect.ValueOf(value)
	var f float64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f = rv.Float()
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// describe names the structural kind of a decoded value for diagnostics.
func describe(value any) string {
	if value == nil {
		return "null"
	}
	if _, ok := value.(json.Number); ok {
		return "number"
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func describeValue(value any) string {
	switch x := value.(type) {
	case string:
		return strconv.Quote(x)
	case float64:
		return formatNumber(x)
	default:
		return fmt.Sprint(x)
	}
}
