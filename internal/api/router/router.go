// Package router assembles the HTTP surface of the clinic backend.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/admin"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/analytics"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/chatbot"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/config"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/doctors"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/equipment"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/http/middleware"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/patients"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/questions"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/vouchers"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Appointments *appointments.Handler
	Patients     *patients.Handler
	Doctors      *doctors.Handler
	Equipment    *equipment.Handler
	Questions    *questions.Handler
	Vouchers     *vouchers.Handler
	Chatbot      *chatbot.Handler
	Admin        *admin.Handler
	Analytics    *analytics.Handler
	AdminTokens  *admin.TokenIssuer
}

// New builds the chi router: public clinic endpoints under /api, the
// admin surface under /api/admin behind JWT auth, plus health and
// metrics.
func New(cfg *config.Config, h Handlers, logger *logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Health and metrics stay outside the rate budget.
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

		r.Mount("/appointments", h.Appointments.Routes())
		r.Mount("/patients", h.Patients.Routes())
		r.Mount("/questions", h.Questions.Routes())
		r.Mount("/vouchers", h.Vouchers.Routes())
		r.Post("/chatbot", h.Chatbot.Chat)

		// Doctor portal: shared-password login plus the specialty queue.
		r.Route("/doctors", func(r chi.Router) {
			r.Post("/login", h.Doctors.Login)
			r.Get("/{doctorId}/appointments", h.Appointments.ForDoctor)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(h.AdminTokens.RequireAuth)

				r.Get("/me", h.Admin.Me)
				r.Get("/stats", h.Admin.Stats)

				r.Get("/appointments", h.Admin.Appointments)
				r.Patch("/appointments/{id}/status", h.Admin.UpdateAppointmentStatus)

				r.Get("/analytics", h.Analytics.Report)
				r.Get("/analytics/export", h.Analytics.Export)

				r.Get("/doctors", h.Doctors.AdminList)

				r.Get("/patients", h.Patients.AdminList)
				r.Post("/patients", h.Patients.AdminCreate)
				r.Get("/patients/{id}", h.Patients.AdminGet)
				r.Put("/patients/{id}", h.Patients.AdminUpdate)

				r.Get("/equipment", h.Equipment.List)
				r.Get("/equipment/{id}", h.Equipment.Get)

				// Destructive operations are reserved for the admin role;
				// staff accounts manage the day-to-day surface above.
				r.Group(func(r chi.Router) {
					r.Use(admin.RequireRole(admin.RoleAdmin))

					r.Delete("/appointments/{id}", h.Admin.DeleteAppointment)

					r.Post("/doctors", h.Doctors.AdminCreate)
					r.Put("/doctors/{id}", h.Doctors.AdminUpdate)
					r.Delete("/doctors/{id}", h.Doctors.AdminDelete)

					r.Delete("/patients/{id}", h.Patients.AdminDelete)

					r.Post("/equipment", h.Equipment.Create)
					r.Put("/equipment/{id}", h.Equipment.Update)
					r.Delete("/equipment/{id}", h.Equipment.Delete)
				})
			})
		})
	})

	return r
}
