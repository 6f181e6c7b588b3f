package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abrezinsky/archeryscore/internal/metrics"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// recordMetrics counts requests by their chi route pattern so that ids in
// paths do not explode label cardinality
func recordMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequest(route, r.Method, strconv.Itoa(status), time.Since(start))
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger) // Custom conditional HTTP logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.FrontendURLs,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(recordMetrics)

	// Long-lived and operational endpoints stay outside the request timeout
	r.Get("/ws", h.Hub.ServeWs)
	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Live standings page and assets (embedded filesystem)
		r.Get("/", h.handleIndex)
		r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))
		r.Handle("/logos/*", http.StripPrefix("/logos/", h.logoServer))

		// Auth routes (public)
		r.Get("/admin/session", h.handleSession)
		r.Post("/admin/login", h.handleLogin)
		r.Post("/admin/logout", h.handleLogout)

		// Read API (public)
		r.Get("/competitions", h.handleListCompetitions)
		r.Get("/competitions/{id}", h.handleGetCompetition)
		r.Get("/archer/{competitionID}/{archerID}", h.handleGetArcher)
		r.Get("/archers/{competitionID}", h.handleListArchers)
		r.Get("/archers/filter/{competitionID}", h.handleFilterArchers)
		r.Get("/clubs/{competitionID}", h.handleListClubs)
		r.Get("/standings/{competitionID}", h.handleGetStandings)
		r.Get("/standings/{competitionID}/export.xlsx", h.handleExportStandings)
		r.Get("/standings/{competitionID}/qr.png", h.handleStandingsQR)
		r.Get("/settings", h.handleGetSettings)

		// Mutations (protected when an admin password is configured)
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireAuthAPI)

			// Competitions
			r.Post("/competitions", h.handleCreateCompetition)
			r.Post("/competitions/logo/{id}", h.handleUpdateLogo)
			r.Delete("/competitions/{id}", h.handleDeleteCompetition)

			// Archers and scores
			r.Post("/archers", h.handleCreateArcher)
			r.Post("/archers/upload", h.handleUploadArchers)
			r.Post("/archers/score", h.handleUpdateScore)
			r.Post("/archers/clear_scores/{competitionID}", h.handleClearScores)
			r.Delete("/archers/{id}", h.handleDeleteArcher)

			// Settings
			r.Put("/settings", h.handleUpdateSettings)
			r.Post("/settings", h.handleUpdateSettings)
		})
	})

	return r
}
