package ollama

// generateRequest / generateResponse model the ollama generation wire
// payloads. They are intentionally distinct from llm domain types.
//
// Optional fields use omitempty: absence, never null. format in particular
// must be missing from the serialized payload unless JSON mode is requested.
type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	System      string  `json:"system,omitempty"`
	Raw         bool    `json:"raw"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	Suffix      string  `json:"suffix,omitempty"`
	Format      string  `json:"format,omitempty"`
	KeepAlive   string  `json:"keep_alive"`
}

type generateResponse struct {
	Model      string `json:"model"`
	CreatedAt  string `json:"created_at"`
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason"`
	Context    []int  `json:"context"`

	TotalDuration      *int64 `json:"total_duration"`
	LoadDuration       *int64 `json:"load_duration"`
	PromptEvalCount    *int   `json:"prompt_eval_count"`
	PromptEvalDuration *int64 `json:"prompt_eval_duration"`
	EvalCount          *int   `json:"eval_count"`
	EvalDuration       *int64 `json:"eval_duration"`
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}
