package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrMalformedResponse means the backend answered 2xx but without usable text.
// Retrying the same request will not help.
var ErrMalformedResponse = errors.New("malformed generation response")

// HTTPStatusError reports a non-2xx answer from the generation endpoint.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// IsTransient reports whether err is worth another attempt. Transport failures,
// timeouts and non-2xx statuses are; malformed bodies and caller cancellation are not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMalformedResponse) || errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
