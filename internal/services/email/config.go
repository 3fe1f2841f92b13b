// File: internal/services/email/config.go
package email

import (
	"time"

	"github.com/iyunix/go-newsbot/internal/domain"
)

type Config struct {
	APIKey  string
	From    string
	To      []string
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return domain.NewConfigError("RESEND_API_KEY가 설정되지 않았습니다.")
	}
	if c.From == "" || len(c.To) == 0 {
		return domain.NewConfigError("EMAIL_FROM 및 EMAIL_TO가 설정되지 않았습니다.")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		From:    "뉴스챗봇 <onboarding@resend.dev>",
		To:      []string{"liszzmword@gmail.com"},
		Timeout: 30 * time.Second,
	}
}
