package apiclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// CodeParameterValidation means caller-supplied parameters do not conform
	// to the endpoint's parameter schema. Raised before any network effect.
	CodeParameterValidation ErrorCode = "parameter_validation"
	// CodeTransport means the underlying exchange could not complete.
	CodeTransport ErrorCode = "transport"
	// CodeResponsePayload means the response body could not be decoded.
	CodeResponsePayload ErrorCode = "response_payload"
	// CodeResponseValidation means the decoded response does not conform to
	// the endpoint's response schema.
	CodeResponseValidation ErrorCode = "response_validation"
	// CodeUnknownEndpoint means the (method, path template) pair is not
	// registered. This is a programming error.
	CodeUnknownEndpoint ErrorCode = "unknown_endpoint"
)

// Issue is a single schema violation.
type Issue struct {
	// Path locates the offending value, e.g. "body.title" or "[0].id".
	Path     string `json:"path"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Error is returned by every failed client call.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Issues  []Issue        `json:"issues,omitempty"`
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying cause, if any.
	Err error `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
// Only the code is compared, so errors.Is(err, &Error{Code: CodeTransport})
// matches any transport failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new client error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new client error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	out := *e
	out.Details = details
	return &out
}

// WithDetails returns a new Error with the provided map merged into details.
// For multiple details, this is more efficient than chaining WithDetail calls.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	out := *e
	out.Details = merged
	return &out
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// validationError builds an error of the given code from collected issues.
func validationError(code ErrorCode, subject string, issues []Issue) *Error {
	msgs := make([]string, 0, len(issues))
	for _, is := range issues {
		msgs = append(msgs, is.String())
	}
	return &Error{
		Code:    code,
		Message: subject + ": " + strings.Join(msgs, "; "),
		Issues:  issues,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
// isString selects length wording for min/max/len.
func formatValidationError(ve validator.FieldError, isString bool) string {
	unit := ""
	if isString {
		unit = " characters"
	}
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		if isString && ve.Param() == "1" {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s%s", ve.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s%s", ve.Param(), unit)
	case "len":
		return fmt.Sprintf("must be exactly %s%s", ve.Param(), unit)
	case "eq":
		return fmt.Sprintf("must equal %s", ve.Param())
	case "ne":
		return fmt.Sprintf("must not equal %s", ve.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "gte":
		if ve.Param() == "0" {
			return "must be non-negative"
		}
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
