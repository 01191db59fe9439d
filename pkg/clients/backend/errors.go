package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the backend error taxonomy. Handlers match on these
// with errors.Is; the backend's detail message travels inside APIError.
var (
	// ErrValidation covers missing or malformed fields rejected by the backend.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers absent devices, sessions, records and references.
	ErrNotFound = errors.New("not found")
	// ErrAuth covers missing, expired or rejected credentials.
	ErrAuth = errors.New("authentication required")
	// ErrNetwork covers transport failures: timeouts, unreachable host.
	// The client never retries automatically; the human re-triggers.
	ErrNetwork = errors.New("backend unreachable")
)

// APIError is a non-2xx backend response with its detail payload preserved.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
}

// Unwrap maps the HTTP status onto the error taxonomy.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return nil
	}
}

// apiError mirrors the backend's FastAPI-style error payload.
type apiError struct {
	Detail string `json:"detail"`
}
