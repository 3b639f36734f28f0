package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/roguebingo/internal/api"
	"github.com/mcoot/roguebingo/internal/api/handler"
	"github.com/mcoot/roguebingo/internal/config"
	"github.com/mcoot/roguebingo/internal/dependencies/clock"
	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/services/perk"
	"github.com/mcoot/roguebingo/internal/services/runs"
	"github.com/mcoot/roguebingo/internal/storage"
	"github.com/mcoot/roguebingo/internal/storage/memory"
	redisstorage "github.com/mcoot/roguebingo/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	// Services
	Registry      *perk.Registry
	RunController *runs.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Rules configures new runs. If zero value, defaults to config.DefaultRules()
	Rules config.Rules
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	rules := cfg.Rules
	if rules == (config.Rules{}) {
		rules = config.DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), rules, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, rules config.Rules, logger *slog.Logger) *App {
	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		Logger:        logger,
		Registry:      perk.NewRegistry(),
		RunController: runs.NewController(store, rules, clk, rnd, logger),
	}
}

// Handler builds the HTTP API for the app
func (a *App) Handler() http.Handler {
	cfg := api.RouterConfig{
		Logger:        a.Logger,
		RunController: a.RunController,
		Registry:      a.Registry,
		Random:        a.Random,
	}
	if p, ok := a.Storage.(handler.Pinger); ok {
		cfg.Pinger = p
	}
	return api.NewRouter(cfg)
}

// Close releases storage connections where the backend holds any
func (a *App) Close() error {
	if c, ok := a.Storage.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
