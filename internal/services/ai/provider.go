// File: internal/services/ai/provider.go
package ai

import (
	"net/http"
	"sync"
)

// Provider hands out a Client bound to the configured credentials. The
// client is built on first successful call and reused afterwards.
type Provider struct {
	config     *Config
	httpClient *http.Client

	mu     sync.Mutex
	client Client
}

func NewProvider(config *Config) *Provider {
	return &Provider{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Client fails with a ConfigError when the key (or, for ollama, the base
// URL) is missing.
func (p *Provider) Client() (Client, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	var (
		c   Client
		err error
	)
	switch p.config.Provider {
	case ProviderOllama:
		c, err = NewOllamaProvider(p.config, p.httpClient)
	default:
		c = NewOpenAIProvider(p.config, p.httpClient)
	}
	if err != nil {
		return nil, err
	}
	p.client = c
	return c, nil
}
