package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/mcoot/roguebingo/internal/api/response"
)

// Pinger is implemented by storage backends that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler creates a health handler. pinger may be nil.
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		response.OK(w, response.Health{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.pinger.Ping(ctx); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "degraded", Storage: err.Error()})
		return
	}
	response.OK(w, response.Health{Status: "ok", Storage: "ok"})
}
