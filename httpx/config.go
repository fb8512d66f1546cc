package httpx

import (
	"log/slog"
	"net/http"
	"time"
)

// Config configures a Client. Use DefaultConfig() as a baseline.
type Config struct {
	// UserAgent is sent with every request. Empty means no User-Agent header.
	UserAgent string

	// ConnectTimeout bounds TCP connect + TLS handshake time.
	// Zero means the tuned transport defaults apply.
	ConnectTimeout time.Duration

	// Timeout bounds the whole request including reading the body.
	// Zero means no client-enforced bound.
	Timeout time.Duration

	// DefaultHeaders are sent with every request. Content-Type is set to
	// application/json unless the caller overrides it.
	DefaultHeaders http.Header

	// Transport is the underlying RoundTripper. If nil, a tuned default is used.
	Transport http.RoundTripper

	// Logger receives a debug line per POST. If nil, logs are discarded.
	Logger *slog.Logger

	// MaxErrorBodyBytes limits how many bytes of a non-2xx response body are
	// retained on Error.RawBody. If zero, DefaultMaxErrorBodyBytes is used.
	MaxErrorBodyBytes int64
}

const DefaultMaxErrorBodyBytes int64 = 64 << 10 // 64KiB

func DefaultConfig() Config {
	return Config{
		DefaultHeaders:    make(http.Header),
		MaxErrorBodyBytes: DefaultMaxErrorBodyBytes,
	}
}
