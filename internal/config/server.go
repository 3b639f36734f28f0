package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Server holds process configuration read from the environment
type Server struct {
	Host        string `env:"ROGUEBINGO_HOST"`
	Port        int    `env:"ROGUEBINGO_PORT" envDefault:"8080"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`
	RulesPath   string `env:"ROGUEBINGO_RULES"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadServer reads an optional dotenv file and then parses the environment.
// A missing dotenv file is not an error.
func LoadServer(dotenvPath string) (Server, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Server{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks storage settings are coherent
func (s Server) Validate() error {
	switch s.StorageType {
	case StorageTypeMemory:
	case StorageTypeRedis:
		if s.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be 'memory' or 'redis'", s.StorageType)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info
func (s Server) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
