package llm

import "context"

// Backend is the canonical identifier of a backend kind, matching the
// api_type field of a server entry.
type Backend string

const (
	BackendUnknown Backend = "unknown"
	BackendOllama  Backend = "ollama"
	BackendOpenAI  Backend = "open_ai"
)

// Generator is the minimal interface an LLM backend must implement.
//
// Implementations are expected to:
// - treat GenerateRequest as read-only
// - return an *Error (or wrap one) for backend/HTTP failures
// - honor ctx cancellation
// - perform no retries: a failed request is reported once
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
}

// BackendNamer is an optional interface for discovering which backend a
// Generator instance talks to.
type BackendNamer interface {
	Backend() Backend
}

func BackendOf(g Generator) Backend {
	if b, ok := g.(BackendNamer); ok {
		if b.Backend() != "" {
			return b.Backend()
		}
	}
	return BackendUnknown
}

// GenerateRequest is the normalized input both adapters accept.
type GenerateRequest struct {
	Model        string
	SystemPrompt string
	Prompt       string

	// JSON asks the backend for structured JSON output. The ollama backend
	// maps this to its format marker; the open_ai backend accepts it for
	// interface symmetry but has no wire mapping for it today.
	JSON bool
}

// GenerateResult is the normalized completion. Text is the only field
// required for correctness; the remaining fields are passthrough metadata
// the ollama backend reports. Absent metadata stays nil.
type GenerateResult struct {
	Text string

	Model      string
	CreatedAt  string
	Done       bool
	DoneReason string
	Context    []int

	// Durations are nanoseconds as reported by the backend.
	TotalDuration      *int64
	LoadDuration       *int64
	PromptEvalCount    *int
	PromptEvalDuration *int64
	EvalCount          *int
	EvalDuration       *int64
}
