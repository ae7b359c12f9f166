package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/cori-saude/cori-web/internal/auth"
	"github.com/cori-saude/cori-web/internal/config"
	"github.com/cori-saude/cori-web/internal/health"
	"github.com/cori-saude/cori-web/internal/http/csrf"
	"github.com/cori-saude/cori-web/internal/http/ratelimit"
	"github.com/cori-saude/cori-web/internal/metrics"
	"github.com/cori-saude/cori-web/internal/ui"
)

// NewRouter wires all HTTP routes for the web UI.
func NewRouter(cfg *config.Config, authService *auth.Service, probe *health.Probe) http.Handler {
	r := chi.NewRouter()

	// Login endpoints: 5 requests per second, burst of 10
	authRateLimiter := ratelimit.NewIPRateLimiter(rate.Limit(5), 10, 5*time.Minute, cfg.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if probe != nil && !probe.Healthy() {
			http.Error(w, "unready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.PrometheusEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	uiHandler := ui.NewHandler(cfg, authService)
	r.Route("/auth", func(r chi.Router) {
		r.Use(authRateLimiter.Middleware())
		r.Get("/login", uiHandler.LoginForm)
		r.Post("/login", uiHandler.Login)
	})

	r.With(authService.RequireSession, csrf.Middleware(cfg)).Post("/auth/logout", uiHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(authService.RequireSession)
		r.Use(csrf.Middleware(cfg))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/agenda", http.StatusFound)
		})
		r.Get("/agenda", uiHandler.Agenda)
		r.Get("/agenda/export", uiHandler.AgendaExport)

		r.Get("/sessions/new", uiHandler.NewSessionForm)
		r.Post("/sessions", uiHandler.CreateSession)
		r.Post("/sessions/{id}/state", uiHandler.UpdateSessionState)
		r.Get("/sessions/{id}/share", uiHandler.ShareSession)

		r.Get("/patients", uiHandler.Patients)
		r.Post("/patients", uiHandler.CreatePatient)
		r.Get("/patients/{id}", uiHandler.ViewPatient)
		r.Post("/patients/{id}/tasks", uiHandler.CreateTask)
		r.Post("/patients/{id}/checkins", uiHandler.CreateCheckin)

		r.Get("/billing", uiHandler.Billing)
		r.Post("/billing/generate/{patientID}", uiHandler.GenerateInvoice)
		r.Post("/billing/{id}/paid", uiHandler.MarkInvoicePaid)
	})

	return r
}
