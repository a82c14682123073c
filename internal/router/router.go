package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Status is the payload served on /status for ops checks.
type Status struct {
	Uptime     string          `json:"uptime"`
	Guilds     int             `json:"guilds"`
	APIs       map[string]bool `json:"apis"`
	CacheReady bool            `json:"cache_ready"`
}

// StatusFunc snapshots the bot's current state.
type StatusFunc func() Status

// New builds the small ops surface that runs alongside the gateway.
func New(status StatusFunc) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status())
	})

	return r
}
