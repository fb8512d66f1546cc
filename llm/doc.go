// Package llm defines the backend-agnostic "generate text" contract of the
// gateway.
//
// A backend is identified by a ServerConfig (resolved by the external
// configuration store) and an optional bearer credential. Both adapters map
// the same GenerateRequest onto their own wire protocol and normalize the
// reply into a GenerateResult; callers depend only on the Generator
// interface, never on adapter internals.
//
// Adapter implementations live under llm/providers; construction by
// api_type tag lives in llm/backends.
package llm
