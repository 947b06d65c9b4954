// Package server provides the HTTP REST API for the site audit service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/d3ccy/seo-geo/internal/audit"
)

// ErrClientNotFound indicates a client record was not found
type ErrClientNotFound struct {
	ClientID uuid.UUID
}

func (e *ErrClientNotFound) Error() string {
	return fmt.Sprintf("client not found: %s", e.ClientID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var invalidURL *audit.InvalidURLError
	if errors.As(err, &invalidURL) {
		return http.StatusBadRequest
	}
	switch err.(type) {
	case *ErrClientNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
