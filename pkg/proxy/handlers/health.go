package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/courier/pkg/proxy"
)

// HealthHandler handles liveness probes. The relay holds no connections of
// its own, so being able to answer is the whole check.
type HealthHandler struct {
	version string
	started time.Time
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version, started: time.Now()}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		NotFound(w, r)
		return
	}

	response := map[string]any{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"timestamp":      time.Now().Unix(),
	}

	if err := proxy.WriteJSONResponse(w, http.StatusOK, response); err != nil {
		slog.ErrorContext(r.Context(), "failed to write health response", "error", err)
	}
}
