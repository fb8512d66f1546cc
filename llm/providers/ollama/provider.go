// Package ollama implements the local-model adapter: it speaks the ollama
// generation protocol and exposes the gateway's Generator contract,
// including the timing and eval metadata the backend reports.
package ollama

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

const (
	generatePath   = "api/generate"
	embeddingsPath = "api/embeddings"

	// Fixed request defaults. format is the only field Generate varies.
	defaultTemperature = 0.3
	defaultKeepAlive   = "10m"
	jsonFormat         = "json"
)

type Provider struct {
	server llm.ServerConfig
	tr     *httpx.Client

	generateURL   string
	embeddingsURL string
}

var _ llm.Generator = (*Provider)(nil)

// New builds an adapter for one configured server. A credential is optional:
// when WithAPIKey supplies a non-empty token it is frozen into the transport
// as a bearer Authorization header.
func New(server llm.ServerConfig, opts ...Option) (*Provider, error) {
	o := options{userAgent: version.UserAgent()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	base, err := parseBaseURL(server.BaseAPIURL)
	if err != nil {
		return nil, &llm.Error{Backend: llm.BackendOllama, Kind: llm.ErrKindInvalidInput,
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
		return nil, &llm.Error{Backend: llm.BackendOllama, Kind: llm.ErrKindClientCreation,
			Message: "build HTTP client", Cause: err}
	}
	if o.apiKey != "" {
		if err := tr.AddHeader("Authorization", "Bearer "+o.apiKey); err != nil {
			return nil, &llm.Error{Backend: llm.BackendOllama, Kind: llm.ErrKindInvalidAPIKey,
				Message: "attach bearer credential", Cause: err}
		}
	}

	return &Provider{
		server:        server,
		tr:            tr,
		generateURL:   base.JoinPath(generatePath).String(),
		embeddingsURL: base.JoinPath(embeddingsPath).String(),
	}, nil
}

func (p *Provider) Backend() llm.Backend { return llm.BackendOllama }

// Generate issues a non-streaming generation request. Optional metadata the
// backend omits stays nil on the result.
func (p *Provider) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResult, error) {
	wreq := generateRequest{
		Model:       req.Model,
		Prompt:      req.Prompt,
		System:      req.SystemPrompt,
		Raw:         false,
		Stream:      false,
		Temperature: defaultTemperature,
		KeepAlive:   defaultKeepAlive,
	}
	if req.JSON {
		wreq.Format = jsonFormat
	}

	raw, err := p.tr.PostJSON(ctx, p.generateURL, wreq)
	if err != nil {
		return llm.GenerateResult{}, p.mapError(err)
	}

	var wresp generateResponse
	if err := json.Unmarshal(raw, &wresp); err != nil {
		return llm.GenerateResult{}, &llm.Error{Backend: llm.BackendOllama, Kind: llm.ErrKindParse,
			Message: "parse generate response", Raw: raw, Cause: err}
	}

	return llm.GenerateResult{
		Text:               wresp.Response,
		Model:              wresp.Model,
		CreatedAt:          wresp.CreatedAt,
		Done:               wresp.Done,
		DoneReason:         wresp.DoneReason,
		Context:            wresp.Context,
		TotalDuration:      wresp.TotalDuration,
		LoadDuration:       wresp.LoadDuration,
		PromptEvalCount:    wresp.PromptEvalCount,
		PromptEvalDuration: wresp.PromptEvalDuration,
		EvalCount:          wresp.EvalCount,
		EvalDuration:       wresp.EvalDuration,
	}, nil
}

// Embeddings returns the embedding vector for text.
func (p *Provider) Embeddings(ctx context.Context, model, text string) ([]float32, error) {
	raw, err := p.tr.PostJSON(ctx, p.embeddingsURL, embeddingRequest{Model: model, Prompt: text})
	if err != nil {
		return nil, p.mapError(err)
	}
	var wresp embeddingResponse
	if err := json.Unmarshal(raw, &wresp); err != nil {
		return nil, &llm.Error{Backend: llm.BackendOllama, Kind: llm.ErrKindParse,
			Message: "parse embeddings response", Raw: raw, Cause: err}
	}
	return wresp.Embedding, nil
}

func (p *Provider) mapError(err error) error {
	var de *httpx.DecodeError
	if errors.As(err, &de) {
		return &llm.Error{Backend: llm.BackendOllama, Kind: llm.ErrKindParse,
			Message: err.Error(), Cause: err}
	}
	var he *httpx.Error
	if errors.As(err, &he) {
		return &llm.Error{Backend: llm.BackendOllama, Kind: llm.ErrKindPost,
			HTTPStatus: he.StatusCode, Message: err.Error(),
			Raw: append([]byte(nil), he.RawBody...), Cause: err}
	}
	return &llm.Error{Backend: llm.BackendOllama, Kind: llm.ErrKindPost,
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
