package redis

import (
	"fmt"

	"github.com/mcoot/roguebingo/internal/model"
)

// Key prefix for all run data
const keyPrefix = "roguebingo"

// runKey returns the Redis key for a finished run
func runKey(id model.RunID) string {
	return fmt.Sprintf("%s:run:%s", keyPrefix, id)
}

// leaderboardKey returns the Redis key for the ZSET of run IDs by score
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}
