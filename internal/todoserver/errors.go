package todoserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// errorCode represents a machine-readable error code.
type errorCode string

const (
	codeInvalidArgument  errorCode = "invalid_argument"
	codeNotFound         errorCode = "not_found"
	codeMethodNotAllowed errorCode = "method_not_allowed"
	codeUnsupportedMedia errorCode = "unsupported_media_type"
	codeInternal         errorCode = "internal"
)

// apiError is the JSON error envelope body.
type apiError struct {
	Code    errorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errorf(code errorCode, format string, args ...any) *apiError {
	return &apiError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// httpStatus maps an errorCode to an HTTP status code.
func (c errorCode) httpStatus() int {
	switch c {
	case codeInvalidArgument:
		return http.StatusBadRequest
	case codeNotFound:
		return http.StatusNotFound
	case codeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case codeUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// toAPIError maps handler errors to the wire envelope.
func toAPIError(err error) *apiError {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any)
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Field()] = msg
			messages = append(messages, ve.Field()+": "+msg)
		}
		return &apiError{
			Code:    codeInvalidArgument,
			Message: strings.Join(messages, "; "),
			Details: details,
		}
	}

	var multi schema.MultiError
	if errors.As(err, &multi) {
		return errorf(codeInvalidArgument, "invalid query: %v", multi)
	}

	return &apiError{Code: codeInternal, Message: err.Error()}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

func writeError(w http.ResponseWriter, err error, logger *slog.Logger) {
	apiErr := toAPIError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code.httpStatus())
	if err := json.NewEncoder(w).Encode(map[string]*apiError{"error": apiErr}); err != nil {
		// Headers already sent, nothing we can do. Log for debugging.
		logger.Error("failed to encode error response",
			slog.String("code", string(apiErr.Code)),
			slog.String("message", apiErr.Message),
			slog.Any("error", err))
	}
}
