package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// RunTTL bounds how long a finished run record is kept
	RunTTL time.Duration

	// LeaderboardSize caps the sorted set; lower scores are evicted first.
	// Zero keeps every entry.
	LeaderboardSize int64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:             "redis://localhost:6379",
		PoolSize:        10,
		MinIdleConns:    2,
		RunTTL:          30 * 24 * time.Hour,
		LeaderboardSize: 1000,
	}
}
