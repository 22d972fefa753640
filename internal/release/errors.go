package release

import (
	"errors"
	"fmt"
)

// NetworkError is returned when the request never produced a response
// (DNS, connection refused, timeout, cancelled context).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to connect to GitHub: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPStatusError represents a non-2xx response from the release API
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GitHub API error: HTTP %d", e.StatusCode)
}

// MalformedResponseError is returned when the payload is not a release
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid release data: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid release data: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Kind names the failure class of err for logs and metrics.
func Kind(err error) string {
	var (
		netErr    *NetworkError
		statusErr *HTTPStatusError
		malformed *MalformedResponseError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.As(err, &malformed):
		return "malformed"
	default:
		return "unknown"
	}
}
