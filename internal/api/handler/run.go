package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/roguebingo/internal/api/request"
	"github.com/mcoot/roguebingo/internal/api/response"
	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/services/runs"
)

// RunHandler handles run endpoints
type RunHandler struct {
	controller *runs.Controller
}

// NewRunHandler creates a new run handler
func NewRunHandler(controller *runs.Controller) *RunHandler {
	return &RunHandler{controller: controller}
}

func runID(r *http.Request) model.RunID {
	return model.RunID(mux.Vars(r)["id"])
}

// Start handles POST /api/v1/runs
func (h *RunHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartRunRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	run, err := h.controller.Start(r.Context(), runs.StartOptions{Seed: req.Seed})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.RunFromModel(run))
}

// Get handles GET /api/v1/runs/{id}
func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	run, err := h.controller.Get(r.Context(), runID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.RunFromModel(run))
}

// Draw handles POST /api/v1/runs/{id}/draw
func (h *RunHandler) Draw(w http.ResponseWriter, r *http.Request) {
	out, err := h.controller.Draw(r.Context(), runID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.DrawResponseFromModel(out))
}

// ChoosePerk handles POST /api/v1/runs/{id}/perk
func (h *RunHandler) ChoosePerk(w http.ResponseWriter, r *http.Request) {
	var req request.ChoosePerkRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.PerkID == "" {
		WriteError(w, NewInvalidRequestError("perk_id is required"))
		return
	}

	run, err := h.controller.ChoosePerk(r.Context(), runID(r), model.PerkID(req.PerkID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.RunFromModel(run))
}

// Restart handles POST /api/v1/runs/{id}/restart
func (h *RunHandler) Restart(w http.ResponseWriter, r *http.Request) {
	run, err := h.controller.Restart(r.Context(), runID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.RunFromModel(run))
}

// Abandon handles DELETE /api/v1/runs/{id}
func (h *RunHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Abandon(r.Context(), runID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
