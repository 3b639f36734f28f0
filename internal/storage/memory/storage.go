package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu   sync.RWMutex
	runs map[model.RunID]*model.RunSummary
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		runs: make(map[model.RunID]*model.RunSummary),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Run operations

func (s *Storage) SaveRun(ctx context.Context, run *model.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = clone(run)
	return nil
}

func (s *Storage) GetRun(ctx context.Context, id model.RunID) (*model.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, model.ErrRunNotFound
	}
	return clone(run), nil
}

func (s *Storage) DeleteRun(ctx context.Context, id model.RunID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	return nil
}

// Leaderboard operations

func (s *Storage) TopRuns(ctx context.Context, limit int) ([]*model.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*model.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, clone(run))
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Score != runs[j].Score {
			return runs[i].Score > runs[j].Score
		}
		return runs[i].ID > runs[j].ID
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func clone(run *model.RunSummary) *model.RunSummary {
	cp := *run
	cp.Perks = maps.Clone(run.Perks)
	return &cp
}
