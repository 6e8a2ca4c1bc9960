package doctors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Handler handles HTTP requests for doctor records and the doctor portal.
type Handler struct {
	store          Store
	portalPassword string
	logger         *logging.Logger
}

// NewHandler creates a doctors handler.
func NewHandler(store Store, portalPassword string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, portalPassword: portalPassword, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/doctors/login. The portal shares one password
// across doctors until per-doctor credentials are introduced.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Vui lòng nhập email và mật khẩu")
		return
	}

	doctor, err := h.store.GetActiveByEmail(r.Context(), req.Email)
	if err != nil || req.Password != h.portalPassword {
		respond.Error(w, http.StatusUnauthorized, "Email hoặc mật khẩu không đúng")
		return
	}

	respond.Data(w, http.StatusOK, "data", map[string]any{
		"_id":       doctor.ID,
		"name":      doctor.Name,
		"email":     doctor.Email,
		"specialty": doctor.Specialty,
		"phone":     doctor.Phone,
	})
}

// AdminList handles GET /admin/doctors.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list doctors failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi lấy danh sách bác sĩ")
		return
	}
	respond.Data(w, http.StatusOK, "doctors", list)
}

// AdminCreate handles POST /admin/doctors.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var d Doctor
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if d.Name == "" || d.Title == "" || d.Specialty == "" || d.Experience == "" {
		respond.Error(w, http.StatusBadRequest, "Vui lòng điền đầy đủ thông tin bác sĩ")
		return
	}
	if err := h.store.Create(r.Context(), &d); err != nil {
		h.logger.Error("create doctor failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi tạo bác sĩ")
		return
	}
	respond.Data(w, http.StatusCreated, "doctor", d)
}

// AdminUpdate handles PUT /admin/doctors/{id}.
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var d Doctor
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	updated, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), &d)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Không tìm thấy bác sĩ")
			return
		}
		h.logger.Error("update doctor failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi cập nhật bác sĩ")
		return
	}
	respond.Data(w, http.StatusOK, "doctor", updated)
}

// AdminDelete handles DELETE /admin/doctors/{id}.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Không tìm thấy bác sĩ")
			return
		}
		h.logger.Error("delete doctor failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Lỗi xóa bác sĩ")
		return
	}
	respond.Message(w, http.StatusOK, "Đã xóa bác sĩ")
}
