package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/doctors"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/observability"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Notifier sends the booking confirmation SMS. Implemented by notify.Service.
type Notifier interface {
	SendAppointmentConfirmation(ctx context.Context, phone, fullName string, date time.Time, timeOfDay, specialty string) error
}

// SheetAppender mirrors a booking into the shared spreadsheet. Implemented
// by sheets.Service.
type SheetAppender interface {
	AppendAppointment(ctx context.Context, fullName, phone, email, specialty, doctorName string, date time.Time, timeOfDay, notes, status string) error
}

// Handler serves the public booking endpoints.
type Handler struct {
	service *Service
	store   Store
	doctors doctors.Store
	sms     Notifier
	sheets  SheetAppender
	logger  *logging.Logger
}

// NewHandler wires the booking endpoints. sms and sheets may be nil when
// the integrations are not configured.
func NewHandler(service *Service, store Store, doctorStore doctors.Store, sms Notifier, sheets SheetAppender, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, store: store, doctors: doctorStore, sms: sms, sheets: sheets, logger: logger}
}

// Routes mounts the public appointment endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/specialties", h.Specialties)
	r.Get("/providers", h.Providers)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
	return r
}

type createRequest struct {
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Specialty       string `json:"specialty"`
	DoctorID        string `json:"doctorId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Notes           string `json:"notes"`
}

// Create books a new appointment and kicks off the confirmation SMS and
// spreadsheet mirror in the background.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Specialty = strings.TrimSpace(req.Specialty)

	if req.FullName == "" || req.Phone == "" || req.Specialty == "" ||
		req.AppointmentDate == "" || req.AppointmentTime == "" {
		observability.BookingOutcomes.WithLabelValues("invalid").Inc()
		respond.Error(w, http.StatusBadRequest, "Vui lòng điền đầy đủ thông tin bắt buộc")
		return
	}
	if !ValidPhone(req.Phone) {
		observability.BookingOutcomes.WithLabelValues("invalid").Inc()
		respond.Error(w, http.StatusBadRequest, "Số điện thoại không hợp lệ")
		return
	}
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		observability.BookingOutcomes.WithLabelValues("invalid").Inc()
		respond.Error(w, http.StatusBadRequest, "Ngày hẹn không hợp lệ")
		return
	}

	appt, err := h.service.Book(r.Context(), BookingRequest{
		FullName:        req.FullName,
		Phone:           req.Phone,
		Email:           strings.TrimSpace(req.Email),
		Specialty:       req.Specialty,
		DoctorID:        strings.TrimSpace(req.DoctorID),
		AppointmentDate: date,
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
		Notes:           strings.TrimSpace(req.Notes),
	})
	switch {
	case errors.Is(err, ErrDoctorNotFound):
		observability.BookingOutcomes.WithLabelValues("invalid").Inc()
		respond.Error(w, http.StatusBadRequest, "Bác sĩ không tồn tại hoặc đã ngừng hoạt động")
		return
	case errors.Is(err, ErrDoctorUnavailable):
		observability.BookingOutcomes.WithLabelValues("conflict").Inc()
		respond.Error(w, http.StatusConflict, "Bác sĩ đã có lịch hẹn vào khung giờ này. Vui lòng chọn khung giờ khác.")
		return
	case err != nil:
		observability.BookingOutcomes.WithLabelValues("error").Inc()
		h.logger.Error("create appointment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể đặt lịch hẹn. Vui lòng thử lại sau.")
		return
	}

	observability.BookingOutcomes.WithLabelValues("created").Inc()
	h.afterBooking(appt)

	respond.JSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Đặt lịch hẹn thành công! Chúng tôi sẽ liên hệ xác nhận trong thời gian sớm nhất.",
		"appointment": appt,
	})
}

// afterBooking runs the side channels without blocking or failing the
// booking response.
func (h *Handler) afterBooking(appt *Appointment) {
	a := *appt
	if h.sheets != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.sheets.AppendAppointment(ctx, a.FullName, a.Phone, a.Email, a.Specialty, a.DoctorName,
				a.AppointmentDate, a.AppointmentTime, a.Notes, a.Status); err != nil {
				h.logger.Warn("sheets append failed", "appointment", a.ID.Hex(), "error", err)
			}
		}()
	}
	if h.sms != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.sms.SendAppointmentConfirmation(ctx, a.Phone, a.FullName, a.AppointmentDate, a.AppointmentTime, a.Specialty); err != nil {
				h.logger.Warn("confirmation sms failed", "appointment", a.ID.Hex(), "error", err)
			}
		}()
	}
}

// List returns the 100 most recent appointments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context(), 100)
	if err != nil {
		h.logger.Error("list appointments failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách lịch hẹn")
		return
	}
	respond.Data(w, http.StatusOK, "appointments", items)
}

// Specialties returns the distinct specialties of active doctors, sorted.
func (h *Handler) Specialties(w http.ResponseWriter, r *http.Request) {
	raw, err := h.doctors.DistinctActiveSpecialties(r.Context())
	if err != nil {
		h.logger.Error("list specialties failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách chuyên khoa")
		return
	}
	seen := make(map[string]bool, len(raw))
	specialties := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		specialties = append(specialties, s)
	}
	sort.Strings(specialties)
	respond.Data(w, http.StatusOK, "specialties", specialties)
}

// Providers returns the active doctors offered on the booking form.
func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	active, err := h.doctors.ListActive(r.Context())
	if err != nil {
		h.logger.Error("list providers failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách bác sĩ")
		return
	}
	respond.Data(w, http.StatusOK, "doctors", active)
}

// Get returns a single appointment by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	appt, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy lịch hẹn")
		return
	}
	if err != nil {
		h.logger.Error("get appointment failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải lịch hẹn")
		return
	}
	respond.Data(w, http.StatusOK, "appointment", appt)
}

// UpdateStatus moves an appointment to a new status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !ValidStatus(req.Status) {
		respond.Error(w, http.StatusBadRequest, "Trạng thái không hợp lệ")
		return
	}
	appt, err := h.store.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Không tìm thấy lịch hẹn")
		return
	}
	if err != nil {
		h.logger.Error("update appointment status failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể cập nhật trạng thái")
		return
	}
	respond.Data(w, http.StatusOK, "appointment", appt)
}

// Delete removes an appointment.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
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

// ForDoctor returns the appointments in a doctor's specialty, newest
// first. The doctor portal uses it to show a doctor their queue.
func (h *Handler) ForDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctors.GetByID(r.Context(), chi.URLParam(r, "doctorId"))
	if err != nil {
		if errors.Is(err, doctors.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Không tìm thấy bác sĩ")
			return
		}
		h.logger.Error("load doctor failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách lịch hẹn")
		return
	}
	items, err := h.store.ListBySpecialty(r.Context(), doctor.Specialty)
	if err != nil {
		h.logger.Error("list appointments by specialty failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách lịch hẹn")
		return
	}
	respond.Data(w, http.StatusOK, "appointments", items)
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
