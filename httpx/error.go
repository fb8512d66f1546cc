package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a transport failure or a non-2xx response.
type Error struct {
	Method string
	URL    string

	// StatusCode is the HTTP status code. It is 0 when the request failed
	// before receiving a response.
	StatusCode int

	// RawBody is a truncated copy of the response body (non-2xx only).
	// It is kept verbatim: callers may need the server's error detail.
	RawBody []byte

	// Cause is the underlying error (transport error, context cancellation, ...).
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if strings.TrimSpace(e.Method) != "" {
		b.WriteString(strings.ToUpper(strings.TrimSpace(e.Method)))
		b.WriteString(" ")
	}
	if strings.TrimSpace(e.URL) != "" {
		b.WriteString(strings.TrimSpace(e.URL))
		b.WriteString(": ")
	}
	if e.StatusCode != 0 {
		b.WriteString(fmt.Sprintf("http %d", e.StatusCode))
		if t := strings.TrimSpace(http.StatusText(e.StatusCode)); t != "" {
			b.WriteString(" ")
			b.WriteString(t)
		}
	} else {
		b.WriteString("request failed")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if len(e.RawBody) > 0 {
		b.WriteString(": ")
		b.Write(e.RawBody)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// AsError extracts *Error.
func AsError(err error) (*Error, bool) {
	var he *Error
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

func IsHTTPStatus(err error, code int) bool {
	he, ok := AsError(err)
	return ok && he.StatusCode == code
}

// HeaderError reports a header name or value that is not a well-formed
// HTTP header token.
type HeaderError struct {
	Name   string
	Value  string
	Reason string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid header %q: %s", e.Name, e.Reason)
}

// DecodeError reports a 2xx response body that was not valid JSON.
// It is distinct from Error so callers can tell a bad payload from a
// failed request.
type DecodeError struct {
	URL   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }
