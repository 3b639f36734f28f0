package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/roguebingo/internal/api/apierr"
	"github.com/mcoot/roguebingo/internal/api/handler"
	"github.com/mcoot/roguebingo/internal/api/middleware"
	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/services/perk"
	"github.com/mcoot/roguebingo/internal/services/runs"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	RunController *runs.Controller
	Registry      *perk.Registry
	Random        random.Random  // request IDs
	Pinger        handler.Pinger // optional storage health check
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})

	// Create handlers
	runHandler := handler.NewRunHandler(cfg.RunController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.RunController)
	perkHandler := handler.NewPerkHandler(cfg.Registry)
	healthHandler := handler.NewHealthHandler(cfg.Pinger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger, cfg.Random))
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.JSONOnly)

	// Run routes
	api.HandleFunc("/runs", runHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/runs/{id}", runHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", runHandler.Abandon).Methods(http.MethodDelete)
	api.HandleFunc("/runs/{id}/draw", runHandler.Draw).Methods(http.MethodPost)
	api.HandleFunc("/runs/{id}/perk", runHandler.ChoosePerk).Methods(http.MethodPost)
	api.HandleFunc("/runs/{id}/restart", runHandler.Restart).Methods(http.MethodPost)

	// Catalog and leaderboard
	api.HandleFunc("/perks", perkHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard/{id}", leaderboardHandler.Get).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	return r
}
