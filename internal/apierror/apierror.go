// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package so that internal
// details (SQL errors, stack traces) never reach the browser.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// The front end shows Message verbatim, so it is always French.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError wraps the field errors of a rejected request body.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Erreur de validation", Fields: fields}
}

// Internal is the only message a 500 ever carries.
const Internal = "Une erreur interne est survenue, veuillez réessayer"
