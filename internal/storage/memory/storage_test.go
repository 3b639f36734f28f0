package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/roguebingo/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) run(id model.RunID, score int) *model.RunSummary {
	return &model.RunSummary{
		ID:         id,
		Seed:       7,
		Score:      score,
		Rank:       "E",
		EndReason:  model.EndNoTurns,
		Perks:      map[model.PerkID]int{model.PerkMultiRoll: 1},
		FinishedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Run tests

func (s *StorageSuite) TestSaveAndGetRun() {
	err := s.storage.SaveRun(s.ctx, s.run("run-1", 1200))
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRun(s.ctx, "run-1")
	s.Require().NoError(err)
	s.Equal(1200, retrieved.Score)
	s.Equal(1, retrieved.Perks[model.PerkMultiRoll])
}

func (s *StorageSuite) TestGetRunNotFound() {
	_, err := s.storage.GetRun(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRunNotFound)
}

func (s *StorageSuite) TestSavedRunIsCopied() {
	run := s.run("run-1", 100)
	s.Require().NoError(s.storage.SaveRun(s.ctx, run))

	run.Score = 999
	run.Perks[model.PerkMultiRoll] = 5

	retrieved, err := s.storage.GetRun(s.ctx, "run-1")
	s.Require().NoError(err)
	s.Equal(100, retrieved.Score)
	s.Equal(1, retrieved.Perks[model.PerkMultiRoll])
}

func (s *StorageSuite) TestDeleteRun() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("run-1", 10)))

	s.Require().NoError(s.storage.DeleteRun(s.ctx, "run-1"))

	_, err := s.storage.GetRun(s.ctx, "run-1")
	s.ErrorIs(err, model.ErrRunNotFound)
}

// Leaderboard tests

func (s *StorageSuite) TestTopRunsOrdering() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("a", 500)))
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("b", 9000)))
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("c", 500)))
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("d", 2500)))

	top, err := s.storage.TopRuns(s.ctx, 3)
	s.Require().NoError(err)

	s.Require().Len(top, 3)
	s.Equal(model.RunID("b"), top[0].ID)
	s.Equal(model.RunID("d"), top[1].ID)
	s.Equal(model.RunID("c"), top[2].ID)
}

func (s *StorageSuite) TestTopRunsNoLimit() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("a", 1)))
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("b", 2)))

	top, err := s.storage.TopRuns(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(top, 2)
}

func (s *StorageSuite) TestTopRunsEmpty() {
	top, err := s.storage.TopRuns(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(top)
}
