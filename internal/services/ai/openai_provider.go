// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config, httpClient *http.Client) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}
	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (*Response, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: p.config.Temperature,
	})
	if err != nil {
		return nil, newProviderError(ProviderOpenAI, "completion", err)
	}
	return fromChatCompletion(resp), nil
}

func fromChatCompletion(resp openai.ChatCompletionResponse) *Response {
	out := &Response{}
	if len(resp.Choices) == 0 {
		return out
	}
	out.Text = resp.Choices[0].Message.Content
	for _, choice := range resp.Choices {
		var cand Candidate
		for _, part := range choice.Message.MultiContent {
			if part.Type == openai.ChatMessagePartTypeText {
				cand.Parts = append(cand.Parts, Part{Text: part.Text})
			}
		}
		out.Candidates = append(out.Candidates, cand)
	}
	return out
}
