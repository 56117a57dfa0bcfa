package apiclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// ConnectionError means the backend could not be reached at all.
type ConnectionError struct {
	Op  string
	URL string
	// Origin is the scheme and host of the configured backend, used in the hint.
	Origin string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Hint())
}

// Hint is the user-facing text for an unreachable backend.
func (e *ConnectionError) Hint() string {
	return "Unable to connect to server. Please ensure the backend is running on " + e.Origin
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// HTTPStatusError is a non-2xx response. Body holds the raw response text.
type HTTPStatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: HTTP error! status: %d - %s", e.Op, e.Status, e.Body)
}

// Message returns the backend's "error" field when the body is JSON carrying one,
// otherwise the raw body.
func (e *HTTPStatusError) Message() string {
	if gjson.Valid(e.Body) {
		if msg := gjson.Get(e.Body, "error"); msg.Exists() && msg.String() != "" {
			return msg.String()
		}
		if msg := gjson.Get(e.Body, "message"); msg.Exists() && msg.String() != "" {
			return msg.String()
		}
	}
	return e.Body
}

// DecodeError is a 2xx response whose body did not match the expected schema.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func originOf(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(base, "/")
	}
	return u.Scheme + "://" + u.Host
}
