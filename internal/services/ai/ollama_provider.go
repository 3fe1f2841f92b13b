// File: internal/services/ai/ollama_provider.go
package ai

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// OllamaProvider runs prompts against a local ollama server. Streamed chunks
// land in the first candidate's parts; the convenience Text field stays empty.
type OllamaProvider struct {
	config *Config
	client *api.Client
}

func NewOllamaProvider(config *Config, httpClient *http.Client) (*OllamaProvider, error) {
	base, err := url.Parse(config.BaseURL)
	if err != nil || base.Host == "" {
		return nil, domain.NewConfigError("AI_BASE_URL 형식이 올바르지 않습니다.")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OllamaProvider{
		config: config,
		client: api.NewClient(base, httpClient),
	}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (*Response, error) {
	req := &api.GenerateRequest{
		Model:  p.config.Model,
		Prompt: prompt,
		Options: map[string]interface{}{
			"temperature": p.config.Temperature,
		},
	}

	var cand Candidate
	err := p.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		if resp.Response != "" {
			cand.Parts = append(cand.Parts, Part{Text: resp.Response})
		}
		return nil
	})
	if err != nil {
		return nil, newProviderError(ProviderOllama, "generate", err)
	}
	return &Response{Candidates: []Candidate{cand}}, nil
}
