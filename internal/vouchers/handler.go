package vouchers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Handler serves the voucher endpoints.
type Handler struct {
	store  Store
	logger *logging.Logger
	now    func() time.Time
}

// NewHandler wires the voucher endpoints.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger, now: time.Now}
}

// Routes mounts the voucher endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/validate", h.Validate)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	return r
}

// Validate checks a code and returns the discount when it is usable.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		respond.Error(w, http.StatusBadRequest, "Vui lòng nhập mã giảm giá")
		return
	}

	v, err := h.store.GetByCode(r.Context(), req.Code)
	if errors.Is(err, ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Mã giảm giá không tồn tại")
		return
	}
	if err != nil {
		h.logger.Error("voucher lookup failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể kiểm tra mã giảm giá")
		return
	}

	if ok, reason := v.Validate(h.now()); !ok {
		respond.Error(w, http.StatusBadRequest, reason)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Mã giảm giá hợp lệ",
		"voucher": map[string]any{
			"code":            v.Code,
			"discountPercent": v.DiscountPercent,
			"description":     v.Description,
			"expiryDate":      v.ExpiryDate,
		},
	})
}

// Create adds a voucher.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var v Voucher
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		respond.Error(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	v.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	if v.Code == "" || v.DiscountPercent < 0 || v.DiscountPercent > 100 || v.ExpiryDate.IsZero() {
		respond.Error(w, http.StatusBadRequest, "Vui lòng điền mã, phần trăm giảm (0-100) và ngày hết hạn")
		return
	}
	v.UsedCount = 0
	v.IsActive = true

	err := h.store.Create(r.Context(), &v)
	if errors.Is(err, ErrDuplicateCode) {
		respond.Error(w, http.StatusConflict, "Mã giảm giá đã tồn tại")
		return
	}
	if err != nil {
		h.logger.Error("create voucher failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tạo mã giảm giá")
		return
	}
	respond.Data(w, http.StatusCreated, "voucher", &v)
}

// List returns all vouchers, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list vouchers failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Không thể tải danh sách mã giảm giá")
		return
	}
	respond.Data(w, http.StatusOK, "vouchers", items)
}
