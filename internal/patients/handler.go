package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Handler serves the patient portal and the admin patient records.
type Handler struct {
	store  Store
	appts  appointments.Store
	logger *logging.Logger
}

// NewHandler wires the patient endpoints.
func NewHandler(store Store, appts appointments.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, appts: appts, logger: logger}
}

// Routes mounts the public patient portal endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Get("/{phone}/appointments", h.MyAppointments)
	r.Patch("/appointments/{id}/cancel", h.CancelAppointment)
	return r
}

// Login checks a phone number into the portal. A number qualifies when it
// has at least one appointment on file; no password is involved.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	phone := strings.TrimSpace(req.Phone)
	if !appointments.ValidPhone(phone) {
		respond.Error(w, http.StatusBadRequest, "Số điện thoại không hợp lệ")
		return
	}

	list, err := h.appts.ListByPhone(r.Context(), phone)
	if err != nil {
		h.logger.Error("patient login lookup failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể đăng nhập. Vui lòng thử lại sau.")
		return
	}
	if len(list) == 0 {
		respond.Error(w, http.StatusNotFound, "Số điện thoại này chưa có lịch hẹn nào tại phòng khám")
		return
	}

	fullName := list[0].FullName
	if p, err := h.store.GetByPhone(r.Context(), phone); err == nil {
		fullName = p.FullName
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"patient": map[string]any{"fullName": fullName, "phone": phone},
	})
}

// MyAppointments lists the caller's appointments by phone, newest first.
func (h *Handler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(chi.URLParam(r, "phone"))
	if !appointments.ValidPhone(phone) {
		respond.Error(w, http.StatusBadRequest, "Số điện thoại không hợp lệ")
		return
	}
	list, err := h.appts.ListByPhone(r.Context(), phone)
	if err != nil {
		h.logger.Error("patient appointments lookup failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách lịch hẹn")
		return
	}
	respond.Data(w, http.StatusOK, "appointments", list)
}

// CancelAppointment lets a patient cancel their own pending appointment.
// The phone in the body must match the booking.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	appt, err := h.appts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, appointments.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy lịch hẹn")
		return
	}
	if err != nil {
		h.logger.Error("cancel lookup failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể hủy lịch hẹn")
		return
	}
	if appt.Phone != strings.TrimSpace(req.Phone) {
		respond.Error(w, http.StatusForbidden, "Bạn không có quyền hủy lịch hẹn này")
		return
	}
	if appt.Status != appointments.StatusPending {
		respond.Error(w, http.StatusBadRequest, "Chỉ có thể hủy lịch hẹn đang chờ xác nhận")
		return
	}

	updated, err := h.appts.UpdateStatus(r.Context(), appt.ID.Hex(), appointments.StatusCancelled)
	if err != nil {
		h.logger.Error("cancel appointment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể hủy lịch hẹn")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Đã hủy lịch hẹn",
		"appointment": updated,
	})
}

// AdminList searches patient records with pagination.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt(q.Get("page"), 1)
	limit := parseInt(q.Get("limit"), 10)
	result, err := h.store.Search(r.Context(), strings.TrimSpace(q.Get("search")), page, limit)
	if err != nil {
		h.logger.Error("list patients failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách bệnh nhân")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"patients":   result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
	})
}

// AdminGet returns one patient record.
func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy bệnh nhân")
		return
	}
	if err != nil {
		h.logger.Error("get patient failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải thông tin bệnh nhân")
		return
	}
	respond.Data(w, http.StatusOK, "patient", p)
}

// AdminCreate adds a patient record.
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var p Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	p.FullName = strings.TrimSpace(p.FullName)
	p.Phone = strings.TrimSpace(p.Phone)
	if p.FullName == "" || !appointments.ValidPhone(p.Phone) {
		respond.Error(w, http.StatusBadRequest, "Vui lòng điền họ tên và số điện thoại hợp lệ")
		return
	}
	p.IsActive = true
	if err := h.store.Create(r.Context(), &p); err != nil {
		h.logger.Error("create patient failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tạo bệnh nhân")
		return
	}
	respond.Data(w, http.StatusCreated, "patient", &p)
}

// AdminUpdate replaces a patient record.
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var p Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	updated, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), &p)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy bệnh nhân")
		return
	}
	if err != nil {
		h.logger.Error("update patient failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể cập nhật bệnh nhân")
		return
	}
	respond.Data(w, http.StatusOK, "patient", updated)
}

// AdminDelete removes a patient record.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy bệnh nhân")
		return
	}
	if err != nil {
		h.logger.Error("delete patient failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể xóa bệnh nhân")
		return
	}
	respond.Message(w, http.StatusOK, "Đã xóa bệnh nhân")
}

func parseInt(s string, def int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
