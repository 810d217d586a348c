// Package errs defines the error type returned across the data layer.
//
// Its purpose is to give callers (the web routes, the CLI) a specific
// error structure with a stable code, a user-facing message, and the
// HTTP status a route should answer with, instead of raw driver errors.
//
//   - Return consistent error shapes to clients (JSON).
//   - Support field-level validation errors for forms.
//   - Play nicely with Go's standard errors package.
package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is the structured error every service operation returns.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`

	// Override tells the client the message is safe to show verbatim.
	Override bool `json:"override"`

	Errors []FieldError `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error, so errors.Is(err, &errs.Error{}) reports
// whether err is a structured error at all.
func (e *Error) Is(target error) bool {
	_, ok := target.(*Error)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Not Found" into "NOT_FOUND".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
