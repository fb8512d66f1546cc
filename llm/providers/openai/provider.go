// Package openai implements the OpenAI-compatible chat adapter. Unlike the
// ollama backend it has no anonymous mode: construction without a credential
// is rejected outright.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/lgc202/modelgate/httpx"
	"github.com/lgc202/modelgate/llm"
	"github.com/lgc202/modelgate/version"
)

const chatCompletionsPath = "v1/chat/completions"

const (
	roleSystem    = "system"
	roleUser      = "user"
	roleAssistant = "assistant"
)

type Provider struct {
	server llm.ServerConfig
	tr     *httpx.Client

	chatURL string
}

var _ llm.Generator = (*Provider)(nil)

// New builds an adapter for one configured server. The credential is
// required and checked before anything else, so a missing key never reaches
// URL parsing or the network.
func New(server llm.ServerConfig, apiKey string, opts ...Option) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindInvalidAPIKey,
			Message: "API key cannot be empty"}
	}

	o := options{userAgent: version.UserAgent()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	base, err := parseBaseURL(server.BaseAPIURL)
	if err != nil {
		return nil, &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindInvalidInput,
			Message: "parse base API URL (" + server.BaseAPIURL + ")", Cause: err}
	}

	tr, err := httpx.New(
		httpx.WithUserAgent(o.userAgent),
		httpx.WithConnectTimeout(secondsOrZero(server.ConnectionTimeout)),
		httpx.WithTimeout(secondsOrZero(server.DeadlineTimeout)),
		httpx.WithTransport(o.transport),
		httpx.WithLogger(o.logger),
	)
	if err != nil {
		return nil, &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindClientCreation,
			Message: "build HTTP client", Cause: err}
	}
	if err := tr.AddHeader("Authorization", "Bearer "+apiKey); err != nil {
		return nil, &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindInvalidAPIKey,
			Message: "attach bearer credential", Cause: err}
	}

	return &Provider{
		server:  server,
		tr:      tr,
		chatURL: base.JoinPath(chatCompletionsPath).String(),
	}, nil
}

func (p *Provider) Backend() llm.Backend { return llm.BackendOpenAI }

// Generate issues a two-message chat completion (system + user) and returns
// the content of the first choice whose message role is assistant.
//
// req.JSON is accepted for interface symmetry with the ollama backend but
// has no wire effect here: the response_format capability is an intentional
// gap pending product clarification, not a latent bug.
func (p *Provider) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResult, error) {
	wreq := chatCompletionRequest{
		Model: req.Model,
		Messages: []apiMessage{
			{Role: roleSystem, Content: req.SystemPrompt},
			{Role: roleUser, Content: req.Prompt},
		},
	}

	raw, err := p.tr.PostJSON(ctx, p.chatURL, wreq)
	if err != nil {
		return llm.GenerateResult{}, p.mapError(err)
	}

	var wresp chatCompletionResponse
	if err := json.Unmarshal(raw, &wresp); err != nil {
		return llm.GenerateResult{}, &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindParse,
			Message: "parse chat completion response", Raw: raw, Cause: err}
	}

	// Stable scan order: the first assistant-role choice wins, whatever its
	// index. A response with no assistant message is a distinct failure,
	// never an empty string.
	for _, choice := range wresp.Choices {
		if choice.Message.Role == roleAssistant {
			return llm.GenerateResult{Text: choice.Message.Content}, nil
		}
	}
	return llm.GenerateResult{}, &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindCompletion,
		Message: "no assistant response found", Raw: raw}
}

func (p *Provider) mapError(err error) error {
	var de *httpx.DecodeError
	if errors.As(err, &de) {
		return &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindParse,
			Message: err.Error(), Cause: err}
	}
	var he *httpx.Error
	if errors.As(err, &he) {
		return &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindPost,
			HTTPStatus: he.StatusCode, Message: err.Error(),
			Raw: append([]byte(nil), he.RawBody...), Cause: err}
	}
	return &llm.Error{Backend: llm.BackendOpenAI, Kind: llm.ErrKindPost,
		Message: err.Error(), Cause: err}
}

func parseBaseURL(s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("base url must be absolute")
	}
	return u, nil
}

func secondsOrZero(s *uint64) time.Duration {
	if s == nil {
		return 0
	}
	return time.Duration(*s) * time.Second
}
