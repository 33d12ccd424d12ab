package hotel

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrNotFound = errors.New("hotel not found")

// UpstreamError reports a transport failure (StatusCode 0) or a non-2xx reply from the hotel API.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("hotel API %s request failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("hotel API %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status to pass through to clients; transport failures map to 500.
func (e *UpstreamError) HTTPStatus() int {
	if e.StatusCode < 400 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}

func (e *UpstreamError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// ValidationError lists the required request parameters that were not supplied.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required query params: " + strings.Join(e.Missing, ", ")
}

func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}
