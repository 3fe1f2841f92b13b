// File: internal/handlers/search_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/iyunix/go-newsbot/internal/domain"
	"github.com/iyunix/go-newsbot/internal/middleware"
	"github.com/iyunix/go-newsbot/internal/services"
)

// SearchStore persists and lists finished searches.
type SearchStore interface {
	Save(ctx context.Context, in services.SaveInput) (string, error)
	List(ctx context.Context, limit int, keyword string) ([]domain.Search, error)
}

type SearchHandler struct {
	store  SearchStore
	logger Logger
}

func NewSearchHandler(store SearchStore, logger Logger) *SearchHandler {
	return &SearchHandler{store: store, logger: logger}
}

type saveRequest struct {
	Keyword string          `json:"keyword"`
	News    json.RawMessage `json:"news"`
	Summary string          `json:"summary"`
	domain.Requester
}

// Save handles POST /save-to-db. A missing userId falls back to the
// session user, if any.
func (h *SearchHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, msgJSONRequired, http.StatusBadRequest)
		return
	}

	requester := req.Requester
	if u, ok := middleware.UserFromContext(r.Context()); ok && requester.UserID == "" {
		requester.UserID = u.ID
		if requester.Name == "" {
			requester.Name = u.Username
		}
	}

	id, err := h.store.Save(r.Context(), services.SaveInput{
		Keyword:   req.Keyword,
		News:      decodeNewsList(req.News),
		Summary:   req.Summary,
		Requester: requester,
	})
	if err != nil {
		h.logger.Error("save search failed", "keyword", req.Keyword, "error", err)
		writeAppError(w, err, "데이터 저장 중 오류가 발생했습니다.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"searchId": id,
		"message":  services.SaveSuccessMessage,
	})
}

// List handles GET /searches?limit=&keyword=.
func (h *SearchHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil {
		limit = 0
	}

	searches, err := h.store.List(r.Context(), limit, query.Get("keyword"))
	if err != nil {
		h.logger.Error("list searches failed", "error", err)
		writeAppError(w, err, "검색 기록을 불러오는 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"searches": searches})
}
