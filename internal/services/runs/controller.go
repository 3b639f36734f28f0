package runs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/roguebingo/internal/config"
	"github.com/mcoot/roguebingo/internal/dependencies/clock"
	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/services/game"
	"github.com/mcoot/roguebingo/internal/storage"
)

const (
	idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	idLength   = 10
)

// StartOptions configures a new run
type StartOptions struct {
	// Seed fixes the draw sequence; nil picks a random seed
	Seed *uint64
}

// Run is a hosted run as returned to clients
type Run struct {
	ID model.RunID `json:"id"`
	model.Snapshot
}

// DrawOutcome is the result of a draw together with the state it left behind
type DrawOutcome struct {
	ID       model.RunID      `json:"id"`
	Result   model.DrawResult `json:"result"`
	Snapshot model.Snapshot   `json:"snapshot"`
}

type hostedRun struct {
	mu       sync.Mutex
	session  *game.Session
	recorded bool
}

// Controller hosts sessions by ID and records finished runs
type Controller struct {
	storage storage.Storage
	rules   config.Rules
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu   sync.RWMutex
	runs map[model.RunID]*hostedRun
}

// NewController creates a new run Controller. random is used for run IDs and
// seeds only; every session draws from its own seeded source.
func NewController(
	storage storage.Storage,
	rules config.Rules,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		rules:   rules,
		clock:   clock,
		random:  random,
		logger:  logger,
		runs:    make(map[model.RunID]*hostedRun),
	}
}

// Rules returns the rule set new runs are started with
func (c *Controller) Rules() config.Rules {
	return c.rules
}

// Start creates a new run
func (c *Controller) Start(ctx context.Context, opts StartOptions) (*Run, error) {
	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = c.newSeed()
	}

	id := model.RunID(c.random.String(idLength, idAlphabet))
	session := game.NewSession(c.rules, random.NewSeeded(seed), c.logger.With(slog.String("run_id", string(id))))

	c.mu.Lock()
	c.runs[id] = &hostedRun{session: session}
	c.mu.Unlock()

	c.logger.Info("run started",
		slog.String("run_id", string(id)),
		slog.Uint64("seed", seed),
	)
	return &Run{ID: id, Snapshot: session.Snapshot()}, nil
}

func (c *Controller) newSeed() uint64 {
	if sr, ok := c.random.(random.Seeder); ok {
		return sr.Seed()
	}
	hi := uint64(c.random.Intn(1 << 32))
	lo := uint64(c.random.Intn(1 << 32))
	return hi<<32 | lo
}

func (c *Controller) lookup(id model.RunID) (*hostedRun, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	run, ok := c.runs[id]
	if !ok {
		return nil, model.ErrRunNotFound
	}
	return run, nil
}

// Get returns the current state of a run
func (c *Controller) Get(ctx context.Context, id model.RunID) (*Run, error) {
	run, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return &Run{ID: id, Snapshot: run.session.Snapshot()}, nil
}

// Draw plays one turn. Draws the session ignores are returned with Skipped set.
func (c *Controller) Draw(ctx context.Context, id model.RunID) (*DrawOutcome, error) {
	run, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()

	result := run.session.Draw()
	c.recordIfOver(ctx, id, run)

	return &DrawOutcome{
		ID:       id,
		Result:   result,
		Snapshot: run.session.Snapshot(),
	}, nil
}

// ChoosePerk applies one of the offered perks
func (c *Controller) ChoosePerk(ctx context.Context, id model.RunID, perkID model.PerkID) (*Run, error) {
	run, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()

	if _, ok := run.session.Registry().Get(perkID); !ok {
		return nil, model.ErrUnknownPerk
	}

	switch run.session.Phase() {
	case model.PhaseGameOver:
		return nil, model.ErrRunOver
	case model.PhaseAwaitingPerkChoice:
	default:
		return nil, model.ErrNoPerkOffer
	}

	snap, ok := run.session.ChoosePerk(perkID)
	if !ok {
		return nil, model.ErrPerkNotOffered
	}
	c.recordIfOver(ctx, id, run)

	c.logger.Info("perk chosen",
		slog.String("run_id", string(id)),
		slog.String("perk", string(perkID)),
	)
	return &Run{ID: id, Snapshot: snap}, nil
}

// Restart replaces the run's session state with a fresh start
func (c *Controller) Restart(ctx context.Context, id model.RunID) (*Run, error) {
	run, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()

	snap := run.session.Restart()
	run.recorded = false
	return &Run{ID: id, Snapshot: snap}, nil
}

// Abandon stops hosting a run. Finished runs stay on the leaderboard.
func (c *Controller) Abandon(ctx context.Context, id model.RunID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.runs[id]; !ok {
		return model.ErrRunNotFound
	}
	delete(c.runs, id)

	c.logger.Info("run abandoned", slog.String("run_id", string(id)))
	return nil
}

// Leaderboard returns the best recorded runs
func (c *Controller) Leaderboard(ctx context.Context, limit int) ([]*model.RunSummary, error) {
	return c.storage.TopRuns(ctx, limit)
}

// Summary returns a recorded run
func (c *Controller) Summary(ctx context.Context, id model.RunID) (*model.RunSummary, error) {
	return c.storage.GetRun(ctx, id)
}

// recordIfOver saves a finished run once. Caller holds run.mu.
func (c *Controller) recordIfOver(ctx context.Context, id model.RunID, run *hostedRun) {
	if run.recorded || run.session.Phase() != model.PhaseGameOver {
		return
	}

	summary := Summarize(id, run.session.Snapshot(), c.clock.Now())
	if err := c.storage.SaveRun(ctx, summary); err != nil {
		c.logger.Error("failed to save run",
			slog.String("run_id", string(id)),
			slog.String("error", err.Error()),
		)
		return
	}
	run.recorded = true

	c.logger.Info("run recorded",
		slog.String("run_id", string(id)),
		slog.Int("score", summary.Score),
		slog.String("rank", summary.Rank),
	)
}
