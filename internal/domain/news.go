// File: internal/domain/news.go
package domain

// NewsItem is one normalized article.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one conversation turn. Turns live on the client only.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Requester identifies who asked for a search or a report.
type Requester struct {
	UserID string `json:"userId,omitempty"`
	Name   string `json:"userName,omitempty"`
	Email  string `json:"userEmail,omitempty"`
	Phone  string `json:"userPhone,omitempty"`
}
