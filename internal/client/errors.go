// ABOUTME: Error types for the clinic API client
// ABOUTME: Defines the single error shape callers see for HTTP and transport failures

package client

import "fmt"

// APIError is the only error kind that crosses the client boundary.
// StatusCode is 0 when no response was received (connection failure,
// timeout, cancellation); otherwise it holds the HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
	}
	return e.Message
}
