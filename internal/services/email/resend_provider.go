// File: internal/services/email/resend_provider.go
package email

import (
	"context"
	"net/http"
	"net/url"

	"github.com/resend/resend-go/v2"

	"github.com/iyunix/go-newsbot/internal/domain"
)

type ResendProvider struct {
	client *resend.Client
}

func NewResendProvider(config *Config) *ResendProvider {
	httpClient := &http.Client{Timeout: config.Timeout}
	return &ResendProvider{client: resend.NewCustomClient(httpClient, config.APIKey)}
}

// WithBaseURL points the provider at another API host.
func (p *ResendProvider) WithBaseURL(base *url.URL) *ResendProvider {
	p.client.BaseURL = base
	return p
}

func (p *ResendProvider) Send(ctx context.Context, msg *Message) (string, error) {
	sent, err := p.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", domain.NewUpstreamError("resend send", err)
	}
	return sent.Id, nil
}
