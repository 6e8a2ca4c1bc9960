package questions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// SheetAppender mirrors a question into the shared spreadsheet.
// Implemented by sheets.Service.
type SheetAppender interface {
	AppendQuestion(ctx context.Context, fullName, phone, email, question string, createdAt time.Time) error
}

// Handler serves the public question endpoints.
type Handler struct {
	store  Store
	sheets SheetAppender
	logger *logging.Logger
}

// NewHandler wires the question endpoints. sheets may be nil when the
// integration is not configured.
func NewHandler(store Store, sheets SheetAppender, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, sheets: sheets, logger: logger}
}

// Routes mounts the public question endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Answer)
	r.Delete("/{id}", h.Delete)
	return r
}

// Create stores a submitted question and mirrors it to the spreadsheet in
// the background.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var q Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	q.FullName = strings.TrimSpace(q.FullName)
	q.Phone = strings.TrimSpace(q.Phone)
	q.Question = strings.TrimSpace(q.Question)
	if q.FullName == "" || q.Question == "" {
		respond.Error(w, http.StatusBadRequest, "Vui lòng điền họ tên và câu hỏi")
		return
	}
	if !appointments.ValidPhone(q.Phone) {
		respond.Error(w, http.StatusBadRequest, "Số điện thoại không hợp lệ")
		return
	}
	q.Answer = ""
	q.Status = StatusPending

	if err := h.store.Create(r.Context(), &q); err != nil {
		h.logger.Error("create question failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể gửi câu hỏi. Vui lòng thử lại sau.")
		return
	}

	if h.sheets != nil {
		saved := q
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.sheets.AppendQuestion(ctx, saved.FullName, saved.Phone, saved.Email, saved.Question, saved.CreatedAt); err != nil {
				h.logger.Warn("sheets append failed", "question", saved.ID.Hex(), "error", err)
			}
		}()
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Câu hỏi của bạn đã được gửi. Chúng tôi sẽ phản hồi sớm nhất có thể.",
		"question": &q,
	})
}

// List returns up to 100 questions, optionally filtered by status.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !ValidStatus(status) {
		respond.Error(w, http.StatusBadRequest, "Trạng thái không hợp lệ")
		return
	}
	items, err := h.store.List(r.Context(), status, 100)
	if err != nil {
		h.logger.Error("list questions failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách câu hỏi")
		return
	}
	respond.Data(w, http.StatusOK, "questions", items)
}

// Get returns a single question.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy câu hỏi")
		return
	}
	if err != nil {
		h.logger.Error("get question failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải câu hỏi")
		return
	}
	respond.Data(w, http.StatusOK, "question", q)
}

// Answer records an answer and optionally a new status. An answer with no
// explicit status marks the question answered.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	status := req.Status
	if status == "" {
		status = StatusAnswered
	}
	if !ValidStatus(status) {
		respond.Error(w, http.StatusBadRequest, "Trạng thái không hợp lệ")
		return
	}

	q, err := h.store.SetAnswer(r.Context(), chi.URLParam(r, "id"), strings.TrimSpace(req.Answer), status)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy câu hỏi")
		return
	}
	if err != nil {
		h.logger.Error("answer question failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể cập nhật câu hỏi")
		return
	}
	respond.Data(w, http.StatusOK, "question", q)
}

// Delete removes a question.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy câu hỏi")
		return
	}
	if err != nil {
		h.logger.Error("delete question failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể xóa câu hỏi")
		return
	}
	respond.Message(w, http.StatusOK, "Đã xóa câu hỏi")
}
