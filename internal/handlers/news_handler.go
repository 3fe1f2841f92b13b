// File: internal/handlers/news_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// NewsSearcher looks up news for a keyword.
type NewsSearcher interface {
	Search(ctx context.Context, keyword string) ([]domain.NewsItem, error)
}

type NewsHandler struct {
	searcher NewsSearcher
	logger   Logger
}

func NewNewsHandler(searcher NewsSearcher, logger Logger) *NewsHandler {
	return &NewsHandler{searcher: searcher, logger: logger}
}

// Search handles GET /news?keyword=...
func (h *NewsHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	news, err := h.searcher.Search(r.Context(), keyword)
	if err != nil {
		h.logger.Error("news search failed", "keyword", keyword, "error", err)
		writeAppError(w, err, "뉴스를 가져오는 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"news":    news,
		"keyword": keyword,
	})
}
