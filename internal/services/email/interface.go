// File: internal/services/email/interface.go
package email

import "context"

// Message is one rendered outbound email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Provider delivers a message and returns the provider's message id.
type Provider interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// Logger defines the logging interface used by the email service.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
