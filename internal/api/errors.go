package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the server reports a missing resource.
var ErrNotFound = errors.New("resource not found")

// APIError describes a non-2xx response body from the studio backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api request failed (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api request failed (%d)", e.StatusCode)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
