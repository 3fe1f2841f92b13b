package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-newsbot/internal/domain"
)

func TestProviderClient_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	p := NewProvider(cfg)

	_, err := p.Client()
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrTypeConfig))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestProviderClient_OllamaNeedsBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.BaseURL = ""

	_, err := NewProvider(cfg).Client()
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrTypeConfig))
}

func TestProviderClient_Reused(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "key"
	p := NewProvider(cfg)

	a, err := p.Client()
	require.NoError(t, err)
	b, err := p.Client()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var gotModel, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotModel = body.Model
		gotPrompt = body.Messages[0].Content

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"안녕하세요"}}]}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "key"
	cfg.BaseURL = srv.URL
	client, err := NewProvider(cfg).Client()
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), "질문")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", gotModel)
	assert.Equal(t, "질문", gotPrompt)
	assert.Equal(t, "안녕하세요", ExtractText(resp, ""))
}

func TestOpenAIProvider_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.APIKey = "bad"
	cfg.BaseURL = srv.URL
	client, err := NewProvider(cfg).Client()
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "질문")
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrTypeUpstream))
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestOllamaProvider_GenerateCollectsChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3","response":"뉴스 ","done":false}` + "\n"))
		_, _ = w.Write([]byte(`{"model":"llama3","response":"요약","done":true}` + "\n"))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.BaseURL = srv.URL
	cfg.Model = "llama3"
	client, err := NewProvider(cfg).Client()
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
	assert.Equal(t, "뉴스 요약", ExtractText(resp, "fallback"))
}
