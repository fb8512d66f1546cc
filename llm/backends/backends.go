// Package backends constructs the right adapter for a configured server.
// It is the only package that knows every adapter; callers depend on
// llm.Generator and nothing else.
package backends

import (
	"fmt"
	"strings"

	"github.com/lgc202/modelgate/llm"
	"github.com/lgc202/modelgate/llm/providers/ollama"
	"github.com/lgc202/modelgate/llm/providers/openai"
)

// New maps server.APIType to an adapter constructor. The credential is the
// already-resolved bearer token for server.Secret; pass "" when the server
// has none. Unrecognized tags fail loudly rather than defaulting.
func New(server llm.ServerConfig, apiKey string) (llm.Generator, error) {
	switch normalize(server.APIType) {
	case llm.BackendOllama:
		return ollama.New(server, ollama.WithAPIKey(apiKey))
	case llm.BackendOpenAI:
		return openai.New(server, apiKey)
	default:
		return nil, &llm.Error{
			Kind:    llm.ErrKindUnsupportedBackend,
			Message: fmt.Sprintf("unsupported api_type %q", strings.TrimSpace(server.APIType)),
		}
	}
}

func normalize(apiType string) llm.Backend {
	switch strings.ToLower(strings.TrimSpace(apiType)) {
	case "ollama":
		return llm.BackendOllama
	case "open_ai", "openai":
		return llm.BackendOpenAI
	default:
		return llm.BackendUnknown
	}
}
