// Package httpx provides the JSON POST client used by the LLM backends:
//   - a frozen default-header set (content type, user agent, bearer auth)
//   - per-client connect and deadline timeouts
//   - typed errors carrying the HTTP status and the raw response body
//   - no automatic redirects: the configured URL is authoritative, and
//     following one would silently move the bearer token to another host
package httpx
