package api

import "fmt"

// HTTPError is a non-2xx response from the Atlantis API. Message carries
// the body's message field when present, otherwise the status fallback.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func newHTTPError(status int, message string) *HTTPError {
	if message == "" {
		message = fmt.Sprintf("Error HTTP %d", status)
	}
	return &HTTPError{Status: status, Message: message}
}

// ShapeError is a 2xx response whose body lacks a required field.
type ShapeError struct {
	Field string
}

func (e *ShapeError) Error() string { return "Respuesta inválida: falta " + e.Field }
