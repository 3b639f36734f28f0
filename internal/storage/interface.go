package storage

import (
	"context"

	"github.com/mcoot/roguebingo/internal/model"
)

// Storage defines the interface for finished run persistence
type Storage interface {
	// Run operations
	SaveRun(ctx context.Context, run *model.RunSummary) error
	GetRun(ctx context.Context, id model.RunID) (*model.RunSummary, error)
	DeleteRun(ctx context.Context, id model.RunID) error

	// Leaderboard operations

	// TopRuns returns up to limit runs by descending score. Equal scores are
	// ordered by descending run ID.
	TopRuns(ctx context.Context, limit int) ([]*model.RunSummary, error)
}
