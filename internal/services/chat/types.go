// File: internal/services/chat/types.go
package chat

import (
	"time"

	"github.com/iyunix/go-newsbot/internal/services/ai"
)

// Logger defines the logging interface used across chat services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ClientSource issues an AI client on demand. *ai.Provider satisfies it.
type ClientSource interface {
	Client() (ai.Client, error)
}

const (
	EmptySummaryMessage = "요약할 뉴스가 없습니다."
	SummaryFallback     = "요약을 생성할 수 없습니다."
	ReplyFallback       = "답변을 생성할 수 없습니다."

	// HistoryWindow is how many trailing turns are replayed into a chat prompt.
	HistoryWindow = 10
)

type Config struct {
	// Timeout bounds one generation call. Zero leaves it to the request context.
	Timeout       time.Duration
	HistoryWindow int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:       0,
		HistoryWindow: HistoryWindow,
	}
}
