package chatbot

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Handler serves the public chat endpoint.
type Handler struct {
	resolver *Resolver
	logger   *logging.Logger
}

// NewHandler wires the chat endpoint.
func NewHandler(resolver *Resolver, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{resolver: resolver, logger: logger}
}

// Chat answers one message. The reply is always non-empty; only an empty
// message is rejected.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		respond.Error(w, http.StatusBadRequest, "Vui lòng nhập nội dung tin nhắn")
		return
	}

	reply, step := h.resolver.Resolve(r.Context(), message)
	h.logger.Info("chat resolved", "step", step, "length", len(reply))
	respond.JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"reply":     reply,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
