package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/roguebingo/internal/api/response"
	"github.com/mcoot/roguebingo/internal/services/runs"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// LeaderboardHandler serves recorded runs
type LeaderboardHandler struct {
	controller *runs.Controller
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(controller *runs.Controller) *LeaderboardHandler {
	return &LeaderboardHandler{controller: controller}
}

// List handles GET /api/v1/leaderboard?limit=
func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLeaderboardLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	top, err := h.controller.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.LeaderboardFromModel(top))
}

// Get handles GET /api/v1/leaderboard/{id}
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.controller.Summary(r.Context(), runID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.RunSummaryFromModel(summary))
}
