// File: internal/handlers/email_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iyunix/go-newsbot/internal/domain"
	"github.com/iyunix/go-newsbot/internal/services/email"
)

// ReportSender mails a summary report.
type ReportSender interface {
	SendReport(ctx context.Context, r email.Report) (string, error)
}

type EmailHandler struct {
	sender ReportSender
	logger Logger
}

func NewEmailHandler(sender ReportSender, logger Logger) *EmailHandler {
	return &EmailHandler{sender: sender, logger: logger}
}

// sendEmailRequest accepts the requester either flat (userName, ...) or
// nested under "requester".
type sendEmailRequest struct {
	Nested  *domain.Requester `json:"requester"`
	Keyword string            `json:"keyword"`
	Summary string            `json:"summary"`
	News    json.RawMessage   `json:"news"`
	domain.Requester
}

// Send handles POST /send-email.
func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, msgJSONRequired, http.StatusBadRequest)
		return
	}

	requester := req.Requester
	if req.Nested != nil {
		requester = *req.Nested
	}

	id, err := h.sender.SendReport(r.Context(), email.Report{
		Requester: requester,
		Keyword:   req.Keyword,
		Summary:   req.Summary,
		News:      decodeNewsList(req.News),
	})
	if err != nil {
		h.logger.Error("send email failed", "keyword", req.Keyword, "error", err)
		writeAppError(w, err, "이메일 전송 중 오류가 발생했습니다.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": id})
}
