package openai

// api* types model the OpenAI-compatible chat-completions wire payloads.
type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
}

type chatCompletionChoice struct {
	Index   int        `json:"index"`
	Message apiMessage `json:"message"`
}

type chatCompletionResponse struct {
	Choices []chatCompletionChoice `json:"choices"`
}
