package ollama

import (
	"log/slog"
	"net/http"
)

type Option func(*options)

type options struct {
	apiKey    string
	userAgent string
	transport http.RoundTripper
	logger    *slog.Logger
}

// WithAPIKey attaches a bearer credential. The empty string means no-auth,
// which is valid for this backend.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithHTTPTransport injects the underlying RoundTripper (tests, proxies).
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
