package http

import (
	"net/http"

	"github.com/bodytraq/imctrack/pkg/httpx"
)

// APIError is the uniform error body every endpoint returns:
// {"error": <machine code>, "message": <human text>}.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string { return e.Code + ": " + e.Message }

// Write sends the error to the client.
func (e *APIError) Write(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

var (
	// ErrBadRequest covers malformed bodies and a malformed Authorization
	// header (which is rejected before token verification runs).
	ErrBadRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "bad_request",
		Message:    "the request is malformed",
	}

	// ErrUnauthorized covers invalid, expired or missing credentials and
	// tokens whose user no longer exists.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       "unauthorized",
		Message:    "invalid or expired credentials",
	}

	// ErrNotFound is returned when an update/delete target does not exist.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       "not_found",
		Message:    "resource not found",
	}

	// ErrConflict reports a duplicate email on register or profile update.
	ErrConflict = &APIError{
		StatusCode: http.StatusConflict,
		Code:       "conflict",
		Message:    "email already registered",
	}

	// ErrServerError hides internal failures behind a generic body; the
	// detail goes to the log only.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       "server_error",
		Message:    "internal server error",
	}
)

// unauthorized builds a 401 with a specific message. Login uses it to keep
// the email/password failure messages distinguishable.
func unauthorized(message string) *APIError {
	return &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       "unauthorized",
		Message:    message,
	}
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeValidationError sends the structured field error list the validation
// functions produce.
func writeValidationError(w http.ResponseWriter, fields []FieldError) {
	httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation_error",
		"fields": fields,
	})
}
