package analytics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/observability"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Handler serves the admin analytics endpoints.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler wires the analytics endpoints.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Report returns the analytics summary for ?range=week|month|year.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	rng := ParseRange(r.URL.Query().Get("range"))
	observability.AnalyticsRequests.WithLabelValues(string(rng)).Inc()

	report, err := h.service.Report(r.Context(), rng)
	if err != nil {
		h.logger.Error("analytics report failed", "range", rng, "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải dữ liệu thống kê")
		return
	}
	respond.Data(w, http.StatusOK, "analytics", report)
}

// Export streams the current window's appointments as a CSV download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	rng := ParseRange(r.URL.Query().Get("range"))
	items, err := h.service.Export(r.Context(), rng)
	if err != nil {
		h.logger.Error("analytics export failed", "range", rng, "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể xuất dữ liệu")
		return
	}

	filename := fmt.Sprintf("lich-hen-%s-%s.csv", rng, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := WriteCSV(w, items); err != nil {
		h.logger.Error("analytics export write failed", "error", err)
	}
}
