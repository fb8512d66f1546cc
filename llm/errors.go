package llm

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// ErrKindInvalidInput marks a malformed URL or config value, detected
	// before any network call.
	ErrKindInvalidInput ErrorKind = "invalid_input"

	// ErrKindInvalidAPIKey marks a missing required credential or a
	// credential that cannot be carried in a header.
	ErrKindInvalidAPIKey ErrorKind = "invalid_api_key"

	// ErrKindClientCreation marks an HTTP client that could not be built
	// from the given configuration.
	ErrKindClientCreation ErrorKind = "client_creation"

	// ErrKindPost marks a network-level failure or a non-2xx response.
	ErrKindPost ErrorKind = "post_failed"

	// ErrKindParse marks a response body that did not match the expected shape.
	ErrKindParse ErrorKind = "parse"

	// ErrKindCompletion marks a well-formed response with no usable
	// completion in it.
	ErrKindCompletion ErrorKind = "completion_failed"

	// ErrKindUnsupportedBackend marks an api_type no adapter exists for.
	ErrKindUnsupportedBackend ErrorKind = "unsupported_backend"
)

// Error is the backend-agnostic error container.
//
// Construction-time failures (bad URL, bad header, missing credential) carry
// no HTTPStatus; request-time failures keep the status and raw body so the
// caller still sees the server's error detail.
type Error struct {
	Backend Backend
	Kind    ErrorKind

	HTTPStatus int
	Message    string

	// Raw is the raw error payload (e.g. the HTTP response body), when available.
	Raw []byte

	Cause error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Backend != "" {
		return fmt.Sprintf("llm %s: %s", e.Backend, msg)
	}
	return fmt.Sprintf("llm: %s", msg)
}

func (e *Error) Unwrap() error { return e.Cause }

func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
