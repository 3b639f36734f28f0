package handler

import (
	"net/http"

	"github.com/mcoot/roguebingo/internal/api/response"
	"github.com/mcoot/roguebingo/internal/services/perk"
)

// PerkHandler serves the perk catalog
type PerkHandler struct {
	registry *perk.Registry
}

// NewPerkHandler creates a new perk handler
func NewPerkHandler(registry *perk.Registry) *PerkHandler {
	return &PerkHandler{registry: registry}
}

// List handles GET /api/v1/perks
func (h *PerkHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.PerkList{Perks: response.PerksFromRegistry(h.registry)})
}
