package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/patients"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Handler serves admin authentication, the dashboard and appointment
// management.
type Handler struct {
	store    Store
	tokens   *TokenIssuer
	stats    *StatsService
	appts    appointments.Store
	patients patients.Store
	logger   *logging.Logger
}

// NewHandler wires the admin endpoints.
func NewHandler(store Store, tokens *TokenIssuer, stats *StatsService, appts appointments.Store, pats patients.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, tokens: tokens, stats: stats, appts: appts, patients: pats, logger: logger}
}

// Login exchanges admin credentials for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Vui lòng nhập tên đăng nhập và mật khẩu")
		return
	}

	// A wrong username, a deactivated account and a wrong password are
	// indistinguishable to the caller.
	account, err := h.store.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, ErrNotFound) || (err == nil && (!account.IsActive || !account.CheckPassword(req.Password))) {
		respond.Error(w, http.StatusUnauthorized, "Tên đăng nhập hoặc mật khẩu không đúng")
		return
	}
	if err != nil {
		h.logger.Error("admin login failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể đăng nhập. Vui lòng thử lại sau.")
		return
	}

	token, err := h.tokens.Issue(account, time.Now())
	if err != nil {
		h.logger.Error("token issue failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể đăng nhập. Vui lòng thử lại sau.")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"admin": map[string]any{
			"username": account.Username,
			"fullName": account.FullName,
			"email":    account.Email,
			"role":     account.Role,
		},
	})
}

// Me returns the account behind the current token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Vui lòng đăng nhập")
		return
	}
	account, err := h.store.GetByID(r.Context(), claims.Subject)
	if errors.Is(err, ErrNotFound) || (err == nil && !account.IsActive) {
		respond.Error(w, http.StatusUnauthorized, "Tài khoản không tồn tại hoặc đã bị vô hiệu hóa")
		return
	}
	if err != nil {
		h.logger.Error("admin lookup failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải thông tin tài khoản")
		return
	}
	respond.Data(w, http.StatusOK, "admin", account)
}

// Stats returns the dashboard summary.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.stats.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải thống kê")
		return
	}
	respond.Data(w, http.StatusOK, "stats", snapshot)
}

// Appointments lists appointments with pagination and an optional status
// filter.
func (h *Handler) Appointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	if status != "" && !appointments.ValidStatus(status) {
		respond.Error(w, http.StatusBadRequest, "Trạng thái không hợp lệ")
		return
	}
	page := parseInt(q.Get("page"), 1)
	limit := parseInt(q.Get("limit"), 10)

	result, err := h.appts.ListPage(r.Context(), status, page, limit)
	if err != nil {
		h.logger.Error("list appointments failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách lịch hẹn")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"appointments": result.Items,
		"total":        result.Total,
		"totalPages":   result.TotalPages,
		"page":         result.Page,
	})
}

// UpdateAppointmentStatus moves an appointment to a new status. Completing
// an appointment also files it into the patient's medical history,
// creating the patient record on first visit; that side effect is logged,
// never fatal.
func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !appointments.ValidStatus(req.Status) {
		respond.Error(w, http.StatusBadRequest, "Trạng thái không hợp lệ")
		return
	}

	appt, err := h.appts.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if errors.Is(err, appointments.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy lịch hẹn")
		return
	}
	if err != nil {
		h.logger.Error("update appointment status failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể cập nhật trạng thái")
		return
	}

	if req.Status == appointments.StatusCompleted {
		if err := h.fileVisit(r, appt); err != nil {
			h.logger.Warn("patient record update failed", "appointment", appt.ID.Hex(), "error", err)
		}
	}
	respond.Data(w, http.StatusOK, "appointment", appt)
}

// fileVisit appends the completed appointment to the patient's history,
// creating the record when the phone is new.
func (h *Handler) fileVisit(r *http.Request, appt *appointments.Appointment) error {
	rec := patients.MedicalRecord{
		Date:       appt.AppointmentDate,
		Treatment:  appt.Specialty,
		DoctorName: appt.DoctorName,
		Notes:      appt.Notes,
	}
	err := h.patients.AppendMedicalRecord(r.Context(), appt.Phone, rec)
	if !errors.Is(err, patients.ErrNotFound) {
		return err
	}
	return h.patients.Create(r.Context(), &patients.Patient{
		FullName:       appt.FullName,
		Phone:          appt.Phone,
		Email:          appt.Email,
		MedicalHistory: []patients.MedicalRecord{rec},
		IsActive:       true,
	})
}

// DeleteAppointment removes an appointment.
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	err := h.appts.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, appointments.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy lịch hẹn")
		return
	}
	if err != nil {
		h.logger.Error("delete appointment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể xóa lịch hẹn")
		return
	}
	respond.Message(w, http.StatusOK, "Đã xóa lịch hẹn")
}

func parseInt(s string, def int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
