// ABOUTME: Error types returned by the API client
// ABOUTME: Separates backend rejections from connectivity failures

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrConnectivity marks failures where the request never reached the backend
var ErrConnectivity = errors.New("no se pudo conectar con el servidor, verifica que esté funcionando")

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	// Message is the body's "message" field, empty when the body had none
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error, status %d", e.StatusCode)
}

// Unauthorized reports whether the backend rejected the credentials or token
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ConnectivityError wraps a transport failure against the configured backend
type ConnectivityError struct {
	BaseURL string
	Err     error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrConnectivity.Error(), e.BaseURL)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrConnectivity) match any ConnectivityError
func (e *ConnectivityError) Is(target error) bool {
	return target == ErrConnectivity
}

// AsAPIError extracts an APIError from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
