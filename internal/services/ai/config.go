// File: internal/services/ai/config.go
package ai

import (
	"time"

	"github.com/iyunix/go-newsbot/internal/domain"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	// Provider selects the backend: "openai" speaks the OpenAI-compatible
	// API (Gemini's compatibility endpoint by default), "ollama" a local model.
	Provider string
	APIKey   string
	BaseURL  string
	Model    string

	Timeout     time.Duration
	Temperature float32
}

// Validate reports a ConfigError when the backend cannot be reached with
// the current settings.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		if c.BaseURL == "" {
			return domain.NewConfigError("AI_BASE_URL가 설정되지 않았습니다.")
		}
	default:
		if c.APIKey == "" {
			return domain.NewConfigError("GEMINI_API_KEY가 설정되지 않았습니다.")
		}
	}
	if c.Model == "" {
		return domain.NewConfigError("AI_MODEL가 설정되지 않았습니다.")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta/openai/",
		Model:       "gemini-2.5-flash",
		Timeout:     0,
		Temperature: 0.7,
	}
}
