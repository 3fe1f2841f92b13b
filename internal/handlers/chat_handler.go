// File: internal/handlers/chat_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iyunix/go-newsbot/internal/domain"
	"github.com/iyunix/go-newsbot/internal/services/chat"
)

const msgNewsBodyRequired = "요청 본문에 { news: NewsItem[] } 형태의 JSON이 필요합니다."

// ChatService summarizes news and answers questions about it.
type ChatService interface {
	Summarize(ctx context.Context, news []domain.NewsItem) (string, error)
	Chat(ctx context.Context, in chat.ChatInput) (string, error)
}

// ChatHandler serves the summarize and chat endpoints.
type ChatHandler struct {
	chatService ChatService
	logger      Logger
}

func NewChatHandler(chatService ChatService, logger Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

type summarizeRequest struct {
	News json.RawMessage `json:"news"`
}

// Summarize handles POST /summarize.
func (h *ChatHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, msgNewsBodyRequired, http.StatusBadRequest)
		return
	}

	summary, err := h.chatService.Summarize(r.Context(), decodeNewsList(req.News))
	if err != nil {
		h.logger.Error("summarize failed", "error", err)
		writeAppError(w, err, "요약 생성 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// chatRequest keeps loosely typed fields so that wrong shapes degrade to
// defaults instead of rejecting the whole body.
type chatRequest struct {
	Message interface{}     `json:"message"`
	News    json.RawMessage `json:"news"`
	Summary interface{}     `json:"summary"`
	History json.RawMessage `json:"history"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, msgJSONRequired, http.StatusBadRequest)
		return
	}

	message, ok := req.Message.(string)
	if !ok {
		writeError(w, "message(문자열)가 필요합니다.", http.StatusBadRequest)
		return
	}
	summary, _ := req.Summary.(string)

	reply, err := h.chatService.Chat(r.Context(), chat.ChatInput{
		Message: message,
		News:    decodeNewsList(req.News),
		Summary: summary,
		History: decodeHistory(req.History),
	})
	if err != nil {
		h.logger.Error("chat failed", "error", err)
		writeAppError(w, err, "응답 생성 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func decodeHistory(raw json.RawMessage) []domain.ChatMessage {
	if len(raw) == 0 {
		return nil
	}
	var history []domain.ChatMessage
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil
	}
	return history
}
