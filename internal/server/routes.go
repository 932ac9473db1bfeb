package server

import (
	"log/slog"
	"net/http"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewRouter creates the HTTP router for the HTML pages and the JSON API.
func NewRouter(a *App, logger *slog.Logger, cfg Config) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.Health)

	// HTML
	mux.HandleFunc("GET /{$}", a.Index)
	mux.HandleFunc("GET /jobs/new", a.NewJobPage)
	mux.HandleFunc("POST /jobs", a.SubmitNewJob)
	mux.HandleFunc("GET /jobs/{id}/edit", a.EditJobPage)
	mux.HandleFunc("POST /jobs/{id}", a.SubmitJobEdit)
	mux.HandleFunc("GET /jobs/{id}/delete", a.DeletePage)
	mux.HandleFunc("POST /jobs/{id}/delete", a.SubmitDelete)
	mux.HandleFunc("POST /reset", a.SubmitReset)

	// JSON API
	mux.HandleFunc("GET /api/jobs", a.ListJobs)
	mux.HandleFunc("POST /api/jobs", a.CreateJob)
	mux.HandleFunc("GET /api/jobs/{id}", a.GetJob)
	mux.HandleFunc("PUT /api/jobs/{id}", a.UpdateJob)
	mux.HandleFunc("DELETE /api/jobs/{id}", a.DeleteJob)
	mux.HandleFunc("POST /api/reset", a.ResetJobs)

	chain := ChainMiddleware(
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(mux)
}
