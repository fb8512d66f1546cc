package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/lgc202/modelgate/httpx"
	"github.com/lgc202/modelgate/llm"
)

func serverConfig(baseURL string) llm.ServerConfig {
	return llm.ServerConfig{
		Name:       "hosted",
		Model:      "gpt-4o-mini",
		APIType:    "open_ai",
		BaseAPIURL: baseURL,
	}
}

func jsonResponse(r *http.Request, status int, body string) *http.Response {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     h,
		Request:    r,
	}
}

func TestNew_EmptyAPIKeyRejectedBeforeURLParse(t *testing.T) {
	// The malformed URL must never be reached: the key check comes first.
	for _, key := range []string{"", "   "} {
		_, err := New(serverConfig("://not-even-a-url"), key)
		if !llm.IsKind(err, llm.ErrKindInvalidAPIKey) {
			t.Fatalf("key=%q: expected invalid_api_key, got %v", key, err)
		}
	}
}

func TestNew_MalformedBaseURL(t *testing.T) {
	_, err := New(serverConfig("not a url"), "sk-test")
	if !llm.IsKind(err, llm.ErrKindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestGenerate_PathPayloadAndAuth(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	rt := httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		return jsonResponse(r, http.StatusOK,
			`{"choices":[{"index":0,"message":{"role":"assistant","content":"hello"}}]}`), nil
	})

	p, err := New(serverConfig("https://api.example.test"), "sk-test", WithHTTPTransport(rt))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	res, err := p.Generate(context.Background(), llm.GenerateRequest{
		Model:        "gpt-4o-mini",
		SystemPrompt: "be terse",
		Prompt:       "hi",
	})
	if err != nil {
		t.Fatalf("Generate() err=%v", err)
	}
	if res.Text != "hello" {
		t.Fatalf("Text=%q", res.Text)
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("path=%q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("Authorization=%q", gotAuth)
	}

	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages=%v", gotBody["messages"])
	}
	first := msgs[0].(map[string]any)
	second := msgs[1].(map[string]any)
	if first["role"] != "system" || first["content"] != "be terse" {
		t.Fatalf("system message=%v", first)
	}
	if second["role"] != "user" || second["content"] != "hi" {
		t.Fatalf("user message=%v", second)
	}
}

func TestGenerate_FirstAssistantChoiceWins(t *testing.T) {
	rt := httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(r, http.StatusOK,
			`{"choices":[{"index":0,"message":{"role":"user","content":"echo"}},{"index":1,"message":{"role":"assistant","content":"hello"}}]}`), nil
	})

	p, err := New(serverConfig("https://api.example.test"), "sk-test", WithHTTPTransport(rt))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	res, err := p.Generate(context.Background(), llm.GenerateRequest{Model: "m", Prompt: "x"})
	if err != nil {
		t.Fatalf("Generate() err=%v", err)
	}
	if res.Text != "hello" {
		t.Fatalf("Text=%q, want the assistant choice, not index 0", res.Text)
	}
}

func TestGenerate_NoAssistantChoiceFails(t *testing.T) {
	rt := httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(r, http.StatusOK,
			`{"choices":[{"index":0,"message":{"role":"user","content":"echo"}}]}`), nil
	})

	p, err := New(serverConfig("https://api.example.test"), "sk-test", WithHTTPTransport(rt))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	_, err = p.Generate(context.Background(), llm.GenerateRequest{Model: "m", Prompt: "x"})
	le, ok := llm.AsError(err)
	if !ok || le.Kind != llm.ErrKindCompletion {
		t.Fatalf("expected completion_failed, got %v", err)
	}
	if !strings.Contains(le.Message, "no assistant response found") {
		t.Fatalf("Message=%q", le.Message)
	}
}

func TestGenerate_JSONFlagHasNoWireEffect(t *testing.T) {
	var gotBody map[string]any
	rt := httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		return jsonResponse(r, http.StatusOK,
			`{"choices":[{"index":0,"message":{"role":"assistant","content":"{}"}}]}`), nil
	})

	p, err := New(serverConfig("https://api.example.test"), "sk-test", WithHTTPTransport(rt))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	if _, err := p.Generate(context.Background(), llm.GenerateRequest{Model: "m", Prompt: "x", JSON: true}); err != nil {
		t.Fatalf("Generate() err=%v", err)
	}
	for _, key := range []string{"format", "response_format"} {
		if _, present := gotBody[key]; present {
			t.Fatalf("unexpected %q key in payload: %v", key, gotBody)
		}
	}
}

func TestGenerate_Non2xxIsPostFailed(t *testing.T) {
	rt := httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(r, http.StatusUnauthorized, `{"error":{"message":"bad key"}}`), nil
	})

	p, err := New(serverConfig("https://api.example.test"), "sk-test", WithHTTPTransport(rt))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	_, err = p.Generate(context.Background(), llm.GenerateRequest{Model: "m", Prompt: "x"})
	le, ok := llm.AsError(err)
	if !ok || le.Kind != llm.ErrKindPost {
		t.Fatalf("expected post_failed, got %v", err)
	}
	if le.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("HTTPStatus=%d", le.HTTPStatus)
	}
	if !strings.Contains(le.Message, "bad key") {
		t.Fatalf("raw body not surfaced: %q", le.Message)
	}
}
