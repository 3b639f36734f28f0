package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Run operations

func (s *Storage) SaveRun(ctx context.Context, run *model.RunSummary) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", run.ID, err)
	}

	// Record and leaderboard entry are written together
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, runKey(run.ID), data, s.cfg.RunTTL)
	pipe.ZAdd(ctx, leaderboardKey(), redis.Z{Score: float64(run.Score), Member: string(run.ID)})
	if s.cfg.LeaderboardSize > 0 {
		pipe.ZRemRangeByRank(ctx, leaderboardKey(), 0, -(s.cfg.LeaderboardSize + 1))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

func (s *Storage) GetRun(ctx context.Context, id model.RunID) (*model.RunSummary, error) {
	data, err := s.client.Get(ctx, runKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRunNotFound
		}
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	var run model.RunSummary
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &run, nil
}

func (s *Storage) DeleteRun(ctx context.Context, id model.RunID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, runKey(id))
	pipe.ZRem(ctx, leaderboardKey(), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	return nil
}

// Leaderboard operations

func (s *Storage) TopRuns(ctx context.Context, limit int) ([]*model.RunSummary, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := s.client.ZRevRange(ctx, leaderboardKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(ids) == 0 {
		return []*model.RunSummary{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = runKey(model.RunID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard runs: %w", err)
	}

	runs := make([]*model.RunSummary, 0, len(values))
	var expired []any
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Record expired; drop its leaderboard entry
			expired = append(expired, ids[i])
			continue
		}
		var run model.RunSummary
		if err := json.Unmarshal([]byte(str), &run); err != nil {
			return nil, fmt.Errorf("decode run %s: %w", ids[i], err)
		}
		runs = append(runs, &run)
	}

	if len(expired) > 0 {
		if err := s.client.ZRem(ctx, leaderboardKey(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("prune leaderboard: %w", err)
		}
	}
	return runs, nil
}

// Ping checks the connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
