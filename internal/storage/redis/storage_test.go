package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/roguebingo/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RunTTL = time.Hour
	cfg.LeaderboardSize = 3

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) run(id model.RunID, score int) *model.RunSummary {
	return &model.RunSummary{
		ID:         id,
		Seed:       42,
		Score:      score,
		Rank:       "D",
		BingoLines: 2,
		Draws:      31,
		FinalSize:  6,
		EndReason:  model.EndNoTurns,
		Perks:      map[model.PerkID]int{model.PerkColumnUp: 1},
		FinishedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Run tests

func (s *StorageSuite) TestSaveAndGetRun() {
	run := s.run("run-1", 2600)

	err := s.storage.SaveRun(s.ctx, run)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRun(s.ctx, "run-1")
	s.Require().NoError(err)
	s.Equal(run, retrieved)
}

func (s *StorageSuite) TestGetRunNotFound() {
	_, err := s.storage.GetRun(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRunNotFound)
}

func (s *StorageSuite) TestSaveRunSetsTTL() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("run-1", 10)))

	s.Equal(time.Hour, s.mini.TTL(runKey("run-1")))
}

func (s *StorageSuite) TestSaveRunAddsLeaderboardEntry() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("run-1", 4321)))

	score, err := s.mini.ZScore(leaderboardKey(), "run-1")
	s.Require().NoError(err)
	s.Equal(float64(4321), score)
}

func (s *StorageSuite) TestDeleteRun() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("run-1", 10)))

	s.Require().NoError(s.storage.DeleteRun(s.ctx, "run-1"))

	_, err := s.storage.GetRun(s.ctx, "run-1")
	s.ErrorIs(err, model.ErrRunNotFound)
	top, err := s.storage.TopRuns(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(top)
}

// Leaderboard tests

func (s *StorageSuite) TestTopRunsOrdering() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("a", 500)))
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("b", 9000)))
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("c", 500)))

	top, err := s.storage.TopRuns(s.ctx, 10)
	s.Require().NoError(err)

	s.Require().Len(top, 3)
	s.Equal(model.RunID("b"), top[0].ID)
	s.Equal(model.RunID("c"), top[1].ID)
	s.Equal(model.RunID("a"), top[2].ID)
}

func (s *StorageSuite) TestTopRunsLimit() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("a", 1)))
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("b", 2)))

	top, err := s.storage.TopRuns(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(model.RunID("b"), top[0].ID)
}

func (s *StorageSuite) TestLeaderboardCapEvictsLowest() {
	for i, id := range []model.RunID{"a", "b", "c", "d"} {
		s.Require().NoError(s.storage.SaveRun(s.ctx, s.run(id, (i+1)*100)))
	}

	members, err := s.mini.ZMembers(leaderboardKey())
	s.Require().NoError(err)
	s.ElementsMatch([]string{"b", "c", "d"}, members)
}

func (s *StorageSuite) TestTopRunsPrunesExpired() {
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("old", 900)))
	s.Require().NoError(s.storage.SaveRun(s.ctx, s.run("new", 100)))
	s.mini.Del(runKey("old"))

	top, err := s.storage.TopRuns(s.ctx, 10)
	s.Require().NoError(err)

	s.Require().Len(top, 1)
	s.Equal(model.RunID("new"), top[0].ID)
	members, err := s.mini.ZMembers(leaderboardKey())
	s.Require().NoError(err)
	s.Equal([]string{"new"}, members)
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}
