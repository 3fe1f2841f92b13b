// File: internal/services/email/service.go
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// ProviderFactory builds a Provider once the config has been validated.
type ProviderFactory func(*Config) Provider

// Service sends summary reports to the fixed recipient list.
type Service struct {
	config      *Config
	newProvider ProviderFactory
	logger      Logger
	now         func() time.Time
}

func NewService(config *Config, newProvider ProviderFactory, logger Logger) *Service {
	if newProvider == nil {
		newProvider = func(c *Config) Provider { return NewResendProvider(c) }
	}
	return &Service{config: config, newProvider: newProvider, logger: logger, now: time.Now}
}

// SendReport validates the requester, renders the report and sends it.
// It returns the provider's message id.
func (s *Service) SendReport(ctx context.Context, r Report) (string, error) {
	if r.Requester.Name == "" || r.Requester.Phone == "" || r.Requester.Email == "" {
		return "", domain.NewValidationError("send email", "이름, 전화번호, 이메일을 모두 입력해주세요.")
	}
	if err := s.config.Validate(); err != nil {
		return "", err
	}

	body, err := RenderReport(r, s.now())
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	msg := &Message{
		From:    s.config.From,
		To:      s.config.To,
		Subject: fmt.Sprintf("[뉴스 요약] %s - %s", r.Keyword, r.Requester.Name),
		HTML:    body,
	}

	id, err := s.newProvider(s.config).Send(ctx, msg)
	if err != nil {
		s.logger.Error("report email failed", "keyword", r.Keyword, "error", err)
		return "", err
	}
	s.logger.Info("report email sent", "keyword", r.Keyword, "id", id, "articles", len(r.News))
	return id, nil
}
