package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/http/httpguts"
)

// Client is a JSON POST client with a frozen default-header set.
//
// Headers are mutable only through AddHeader, which rebuilds the underlying
// http.Client so the change takes effect on the next request. Do this during
// single-threaded setup: once PostJSON is being called concurrently the
// client must be treated as read-only.
type Client struct {
	userAgent      string
	connectTimeout time.Duration
	timeout        time.Duration
	maxErrBody     int64

	logger *slog.Logger
	base   http.RoundTripper

	// headers accumulates configuration; frozen is the snapshot the current
	// httpClient was built against. A stale httpClient is never used because
	// every mutation goes through rebuild.
	headers    http.Header
	frozen     http.Header
	httpClient *http.Client
}

// New constructs a Client from DefaultConfig() plus the provided options.
// Content-Type defaults to application/json.
func New(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	for _, o := range opts {
		if o != nil {
			o.apply(&cfg)
		}
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg Config) (*Client, error) {
	if cfg.ConnectTimeout < 0 || cfg.Timeout < 0 {
		return nil, errors.New("httpx: negative timeout")
	}

	hdr := make(http.Header)
	for k, vv := range cfg.DefaultHeaders {
		for _, v := range vv {
			hdr.Add(k, v)
		}
	}
	if hdr.Get("Content-Type") == "" {
		hdr.Set("Content-Type", "application/json")
	}

	maxErrBody := cfg.MaxErrorBodyBytes
	if maxErrBody == 0 {
		maxErrBody = DefaultMaxErrorBodyBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	rt := cfg.Transport
	if rt == nil {
		rt = DefaultTransport(cfg.ConnectTimeout)
	}

	c := &Client{
		userAgent:      cfg.UserAgent,
		connectTimeout: cfg.ConnectTimeout,
		timeout:        cfg.Timeout,
		maxErrBody:     maxErrBody,
		logger:         logger,
		base:           rt,
		headers:        hdr,
	}
	c.rebuild()
	return c, nil
}

// AddHeader sets a default header and rebuilds the underlying client.
// An existing name is overwritten. Malformed names or values return a
// *HeaderError and leave the previously built client untouched.
func (c *Client) AddHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return &HeaderError{Name: name, Value: value, Reason: "not a valid header field name"}
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return &HeaderError{Name: name, Value: value, Reason: "not a valid header field value"}
	}
	c.headers.Set(name, value)
	c.rebuild()
	return nil
}

// rebuild freezes the current header set into a fresh http.Client.
// Redirects are never followed: a 3xx is returned as-is and surfaces as a
// non-2xx failure from PostJSON.
func (c *Client) rebuild() {
	c.frozen = c.headers.Clone()
	c.httpClient = &http.Client{
		Transport: c.base,
		Timeout:   c.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// PostJSON sends payload as the JSON request body and returns the raw JSON
// response. Transport failures and non-2xx statuses return *Error (with the
// status and body when available); a 2xx body that is not valid JSON returns
// *DecodeError.
func (c *Client) PostJSON(ctx context.Context, url string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Method: http.MethodPost, URL: url, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Method: http.MethodPost, URL: url, Cause: err}
	}
	for k, vv := range c.frozen {
		req.Header[k] = append([]string(nil), vv...)
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Method: http.MethodPost, URL: url, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: http.MethodPost, URL: url, StatusCode: resp.StatusCode, Cause: err}
	}

	c.logger.Debug("httpx post", "url", url, "status", resp.StatusCode, "bytes", len(raw))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if int64(len(raw)) > c.maxErrBody {
			raw = raw[:c.maxErrBody]
		}
		return nil, &Error{
			Method:     http.MethodPost,
			URL:        url,
			StatusCode: resp.StatusCode,
			RawBody:    raw,
			Cause:      errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	var out json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodeError{URL: url, Cause: err}
	}
	return out, nil
}
