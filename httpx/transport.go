package httpx

import (
	"net"
	"net/http"
	"time"
)

// RoundTripperFunc adapts a function to an http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// DefaultTransport returns a tuned clone of http.DefaultTransport.
// connectTimeout overrides the dial timeout when positive.
func DefaultTransport(connectTimeout time.Duration) *http.Transport {
	base, _ := http.DefaultTransport.(*http.Transport)
	if base == nil {
		return &http.Transport{}
	}
	t := base.Clone()

	dial := 5 * time.Second
	if connectTimeout > 0 {
		dial = connectTimeout
	}
	t.DialContext = (&net.Dialer{
		Timeout:   dial,
		KeepAlive: 30 * time.Second,
	}).DialContext
	if connectTimeout > 0 {
		t.TLSHandshakeTimeout = connectTimeout
	}
	t.ExpectContinueTimeout = 1 * time.Second
	t.IdleConnTimeout = 90 * time.Second
	if t.MaxIdleConnsPerHost == 0 {
		t.MaxIdleConnsPerHost = 50
	}
	t.ForceAttemptHTTP2 = true
	return t
}
