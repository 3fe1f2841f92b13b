package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// FrontendLogPayload defines the structure for logs coming from the browser.
type FrontendLogPayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Context any    `json:"context,omitempty"`
}

// LogHandler forwards client side log lines into the server log.
type LogHandler struct {
	logger Logger
}

func NewLogHandler(logger Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// LogFrontendEvent handles POST /log.
func (h *LogHandler) LogFrontendEvent(w http.ResponseWriter, r *http.Request) {
	var payload FrontendLogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	kv := []interface{}{"source", "client", "message", payload.Message, "context", payload.Context}
	switch strings.ToLower(payload.Level) {
	case "error":
		h.logger.Error("CLIENT_LOG", kv...)
	case "warn":
		h.logger.Warn("CLIENT_LOG", kv...)
	case "debug":
		h.logger.Debug("CLIENT_LOG", kv...)
	default:
		h.logger.Info("CLIENT_LOG", kv...)
	}

	w.WriteHeader(http.StatusNoContent)
}
