package openai

import (
	"log/slog"
	"net/http"
)

type Option func(*options)

type options struct {
	userAgent string
	transport http.RoundTripper
	logger    *slog.Logger
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
