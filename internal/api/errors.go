package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response that is neither an auth failure nor a
// transport failure. Message holds the most specific detail the server
// provided, falling back to the standard status text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error: %s (status %d)", e.Message, e.StatusCode)
}

// ErrorMessage renders err for the user: the server detail for an APIError,
// a generic line for an unreachable server, err.Error() otherwise.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "server unreachable, please try again"
	}
	return err.Error()
}
