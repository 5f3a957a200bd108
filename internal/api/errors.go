package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork indicates the request never produced a usable response:
	// the connection failed or the body could not be decoded.
	ErrNetwork = errors.New("network error")

	// ErrTimeout indicates the request exceeded the configured timeout.
	// Timeouts also match ErrNetwork.
	ErrTimeout = errors.New("request timed out")
)

// ServerError is a business error reported by the backend, either as a
// success=false payload or as an HTTP error with a detail message.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return e.Message
}

// AsServerError returns the ServerError in err's chain, or nil.
func AsServerError(err error) *ServerError {
	var se *ServerError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

func networkError(err error) error {
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
