// Package errors provides the RFC 7807 error responses the HTTP transport
// renders and the handler that maps domain errors onto them.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// Problem type URIs following RFC 7807.
const (
	TypeValidation    = "/errors/validation"
	TypeNotFound      = "/errors/not-found"
	TypeMalformedDate = "/errors/malformed-date"
	TypeBadMethod     = "/errors/unsupported-method"
	TypeRateLimit     = "/errors/rate-limit"
	TypeTimeout       = "/errors/timeout"
	TypeUpstream      = "/errors/upstream"
	TypeInternal      = "/errors/internal"
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface.
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON flattens extensions into the response body.
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})
	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status
	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}
	for k, v := range pd.Extensions {
		data[k] = v
	}
	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error.
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details.
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// APIError is a transport-level error with an HTTP status and stable code.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// New creates a new APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// ErrValidation builds a field validation error.
func ErrValidation(field, message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  "VALIDATION_ERROR",
		Message:    message,
		Details:    map[string]string{"field": field},
	}
}

// ErrNotFound builds a resource not-found error.
func ErrNotFound(resource string) *APIError {
	return &APIError{
		StatusCode: http.StatusNotFound,
		ErrorCode:  "NOT_FOUND",
		Message:    resource + " not found",
	}
}
