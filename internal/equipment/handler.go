package equipment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Handler handles admin HTTP requests for equipment.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates an equipment handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// List handles GET /admin/equipment with optional category/status filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}
	items, err := h.store.List(r.Context(), f)
	if err != nil {
		h.logger.Error("list equipment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi lấy danh sách thiết bị")
		return
	}
	respond.Data(w, http.StatusOK, "equipment", items)
}

// Get handles GET /admin/equipment/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Không tìm thấy thiết bị")
			return
		}
		h.logger.Error("get equipment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi lấy thông tin thiết bị")
		return
	}
	respond.Data(w, http.StatusOK, "equipment", it)
}

// Create handles POST /admin/equipment.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var it Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if it.Name == "" || !ValidCategory(it.Category) {
		respond.Error(w, http.StatusBadRequest, "Vui lòng nhập tên và loại thiết bị hợp lệ")
		return
	}
	if it.Status != "" && !ValidStatus(it.Status) {
		respond.Error(w, http.StatusBadRequest, "Trạng thái thiết bị không hợp lệ")
		return
	}
	if err := h.store.Create(r.Context(), &it); err != nil {
		h.logger.Error("create equipment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi tạo thiết bị")
		return
	}
	respond.Data(w, http.StatusCreated, "equipment", it)
}

// Update handles PUT /admin/equipment/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var it Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if it.Category != "" && !ValidCategory(it.Category) {
		respond.Error(w, http.StatusBadRequest, "Loại thiết bị không hợp lệ")
		return
	}
	if it.Status != "" && !ValidStatus(it.Status) {
		respond.Error(w, http.StatusBadRequest, "Trạng thái thiết bị không hợp lệ")
		return
	}
	updated, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), &it)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Không tìm thấy thiết bị")
			return
		}
		h.logger.Error("update equipment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi cập nhật thiết bị")
		return
	}
	respond.Data(w, http.StatusOK, "equipment", updated)
}

// Delete handles DELETE /admin/equipment/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Không tìm thấy thiết bị")
			return
		}
		h.logger.Error("delete equipment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi xóa thiết bị")
		return
	}
	respond.Message(w, http.StatusOK, "Đã xóa thiết bị")
}
