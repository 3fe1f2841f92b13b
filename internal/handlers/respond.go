// File: internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/iyunix/go-newsbot/internal/domain"
)

const msgJSONRequired = "요청 본문에 JSON이 필요합니다."

// Logger is the logging surface the handlers need.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeAppError maps err onto a status and message. Errors outside the
// domain taxonomy are answered with 500 and their own message, or fallback
// when that is empty.
func writeAppError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := domain.AsAppError(err); ok {
		writeError(w, appErr.Message, appErr.StatusCode())
		return
	}
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	writeError(w, msg, http.StatusInternalServerError)
}

// decodeJSON reads the request body into dst. An empty or malformed body is
// an error.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// decodeNewsList accepts any JSON value. A non-array yields an empty list.
// Array elements that are not news objects still count, as zero items.
func decodeNewsList(raw json.RawMessage) []domain.NewsItem {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil || elems == nil {
		return []domain.NewsItem{}
	}
	items := make([]domain.NewsItem, len(elems))
	for i, elem := range elems {
		_ = json.Unmarshal(elem, &items[i])
	}
	return items
}
