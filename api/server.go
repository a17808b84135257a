/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RequestLog: One structured zerolog line per request
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/wage/*        Stateless calculators
  /api/contracts/*   Contract lifecycle
  /api/workers/*     Worker views (contracts, career)
  /api/employers/*   Employer views
  /api/scenarios/*   Demo scenarios

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Contract handlers
  - calculator.go: Wage calculator handlers
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLog(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Calculator routes
		r.Route("/wage", func(r chi.Router) {
			r.Post("/hours", h.CalculateHours)
			r.Post("/holiday-pay", h.CalculateHolidayPay)
			r.Post("/breakdown", h.CalculateBreakdown)
			r.Post("/inclusive", h.CalculateInclusive)
			r.Get("/inclusive/suggest", h.SuggestInclusiveRates)
			r.Get("/minimum/{year}", h.GetMinimumWage)
			r.Post("/summary", h.SummarizeTerms)
		})

		// Contract routes
		r.Route("/contracts", func(r chi.Router) {
			r.Post("/", h.CreateContract)
			r.Get("/{id}", h.GetContract)
			r.Patch("/{id}", h.UpdateContract)
			r.Delete("/{id}", h.DeleteContract)
			r.Post("/{id}/sign", h.SignContract)
			r.Get("/{id}/editability", h.GetEditability)
			r.Get("/{id}/wage", h.GetContractWage)
			r.Post("/{id}/rating", h.RateContract)
		})

		// Party routes
		r.Route("/workers", func(r chi.Router) {
			r.Get("/{id}/contracts", h.ListWorkerContracts)
			r.Get("/{id}/career", h.GetCareer)
		})
		r.Route("/employers", func(r chi.Router) {
			r.Get("/{id}/contracts", h.ListEmployerContracts)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}

// RequestLog logs each request once it completes.
func RequestLog(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			event := log.Info()
			if status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}
