// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"
	"time"

	"github.com/notiondash/notiondash/internal/server/handlers"
	"github.com/notiondash/notiondash/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(svc *handlers.Services, version string) http.Handler {
	mux := &http.ServeMux{}
	h := handlers.NewHandler(svc, version)

	// Generous per-IP limit; the dashboard polls but a single browser
	// never approaches this.
	limiter := ratelimit.NewLimiter(120, time.Minute, 30)

	mux.Handle("GET /api/v1/health", Wrap(h.Health, nil))

	mux.Handle("POST /api/v1/query", Wrap(h.Query, limiter))
	mux.Handle("POST /api/v1/records/{id}/status", Wrap(h.CycleStatus, limiter))
	mux.Handle("GET /api/v1/pages/{id}/title", Wrap(h.PageTitle, limiter))
	mux.Handle("POST /api/v1/pages/titles", Wrap(h.PageTitles, limiter))
	mux.Handle("GET /api/v1/records/{id}/blocks", Wrap(h.Blocks, limiter))

	mux.Handle("GET /api/v1/settings", Wrap(h.GetSettings, limiter))
	mux.Handle("PUT /api/v1/settings", Wrap(h.UpdateSettings, limiter))
	mux.Handle("PUT /api/v1/settings/databases/{id}", Wrap(h.UpdateDatabaseSettings, limiter))

	return mux
}
