// File: internal/services/chat/service.go
package chat

import (
	"context"
	"time"

	"github.com/iyunix/go-newsbot/internal/domain"
	"github.com/iyunix/go-newsbot/internal/services/ai"
)

// Service produces news digests and grounded chat replies.
type Service struct {
	clients ClientSource
	config  *Config
	logger  Logger
}

func NewService(clients ClientSource, config *Config, logger Logger) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{clients: clients, config: config, logger: logger}
}

// Summarize digests the articles in a few sentences. An empty list returns
// EmptySummaryMessage without touching the AI backend.
func (s *Service) Summarize(ctx context.Context, news []domain.NewsItem) (string, error) {
	if len(news) == 0 {
		return EmptySummaryMessage, nil
	}

	text, err := s.generate(ctx, "summarize", BuildSummaryPrompt(news), SummaryFallback)
	if err != nil {
		return "", err
	}
	s.logger.Info("summary generated", "articles", len(news), "chars", len([]rune(text)))
	return text, nil
}

// Chat answers one user message grounded on the supplied news and summary.
func (s *Service) Chat(ctx context.Context, in ChatInput) (string, error) {
	if in.Message == "" {
		return "", domain.NewValidationError("chat", "message(문자열)가 필요합니다.")
	}

	prompt := BuildChatPrompt(in, s.config.HistoryWindow)
	reply, err := s.generate(ctx, "chat", prompt, ReplyFallback)
	if err != nil {
		return "", err
	}
	s.logger.Info("chat reply generated",
		"articles", len(in.News),
		"history_turns", len(in.History),
		"has_summary", in.Summary != "")
	return reply, nil
}

func (s *Service) generate(ctx context.Context, op, prompt, fallback string) (string, error) {
	client, err := s.clients.Client()
	if err != nil {
		s.logger.Error("AI client unavailable", "operation", op, "error", err)
		return "", err
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := client.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("AI generation failed", "operation", op, "error", err)
		return "", err
	}
	s.logger.Debug("AI generation finished", "operation", op, "duration_ms", time.Since(start).Milliseconds())
	return ai.ExtractText(resp, fallback), nil
}
