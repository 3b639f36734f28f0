package game

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/mcoot/roguebingo/internal/config"
	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/services/board"
	"github.com/mcoot/roguebingo/internal/services/lines"
	"github.com/mcoot/roguebingo/internal/services/perk"
	"github.com/mcoot/roguebingo/internal/services/roll"
	"github.com/mcoot/roguebingo/internal/services/scoring"
)

// Session is one single-player run. It owns the board, number range, perk
// counts and line set; only snapshots leave it. A Session is not safe for
// concurrent use.
type Session struct {
	rules    config.Rules
	random   random.Random
	logger   *slog.Logger
	boards   *board.Service
	rolls    *roll.Generator
	scoring  *scoring.Service
	registry *perk.Registry
	seed     uint64

	board       *model.Board
	rng         model.NumberRange
	counts      model.PerkCounts
	perks       *perk.Resolver
	tracker     *lines.Tracker
	turnsLeft   int
	drawCount   int
	bingoLines  int
	score       int
	comboStreak int
	lastRolls   []int
	phase       model.Phase
	offer       []model.PerkID
	endReason   model.EndReason
	logs        *logbook
	drawing     bool
}

// NewSession starts a run. rules must already be valid.
func NewSession(rules config.Rules, rnd random.Random, logger *slog.Logger) *Session {
	s := &Session{
		rules:    rules,
		logger:   logger,
		scoring:  scoring.New(logger),
		registry: perk.NewRegistry(),
	}
	if sr, ok := rnd.(random.Seeder); ok {
		s.seed = sr.Seed()
	}
	s.bind(rnd)
	s.reset()
	return s
}

// bind points every random consumer at rnd
func (s *Session) bind(rnd random.Random) {
	s.random = rnd
	s.boards = board.New(rnd, board.Settings{
		MinSize:   s.rules.MinBoardSize,
		MaxSize:   s.rules.MaxBoardSize,
		RangeStep: s.rules.RangeStep,
	}, s.logger)
	s.rolls = roll.New(rnd, s.logger)
}

func (s *Session) reset() {
	s.rng = model.NumberRange{Min: s.rules.MinNumber, Max: s.rules.MaxNumber}
	s.board = s.boards.BuildFreshBoard(s.rules.BoardSize, s.rules.BoardSize, s.rng)
	s.counts = model.PerkCounts{}
	s.perks = perk.NewResolver(s.registry, s.counts)
	s.tracker = lines.NewTracker(s.board.Size)
	s.turnsLeft = s.rules.InitialTurns
	s.drawCount = 0
	s.bingoLines = 0
	s.score = 0
	s.comboStreak = 0
	s.lastRolls = nil
	s.phase = model.PhaseReady
	s.offer = nil
	s.endReason = ""
	s.drawing = false
	s.logs = newLogbook(s.rules.MaxLogEntries)
	s.logs.add("Run started: %dx%d board, %d turns", s.board.Size, s.board.Size, s.turnsLeft)
}

// Restart discards the current run and starts a fresh one. A seeded source
// is rewound to its seed so the restarted run replays the original; any
// other source keeps its stream.
func (s *Session) Restart() model.Snapshot {
	if _, ok := s.random.(*random.SeededRandom); ok {
		s.bind(random.NewSeeded(s.seed))
	}
	s.reset()
	s.logger.Info("session restarted", slog.Uint64("seed", s.seed))
	return s.Snapshot()
}

// Phase returns the current state
func (s *Session) Phase() model.Phase {
	return s.phase
}

// Registry returns the perk catalog the session offers from
func (s *Session) Registry() *perk.Registry {
	return s.registry
}

// Counts returns a copy of the held perk counts
func (s *Session) Counts() model.PerkCounts {
	return s.perks.Counts()
}

// Draw consumes one turn and resolves a batch of rolls. Drawing while a perk
// choice is pending, after game over, or while another draw is running does
// nothing and reports why in Skipped.
func (s *Session) Draw() model.DrawResult {
	if reason := s.skipReason(); reason != model.SkipNone {
		s.logger.Debug("draw ignored", slog.String("reason", string(reason)))
		if reason == model.SkipAwaitingPerk {
			s.logs.add("Pick a perk before drawing again")
		}
		return model.DrawResult{Skipped: reason}
	}

	s.drawing = true
	defer func() { s.drawing = false }()

	s.phase = model.PhaseDrawInProgress
	s.turnsLeft--
	s.drawCount++

	candidates := s.rolls.Generate(s.board, s.rng, s.perks.RollPlan(), s.perks.RollFilters())
	rolls := roll.Values(candidates)
	out := s.scoring.Resolve(scoring.Table{
		Board:            s.board,
		Tracker:          s.tracker,
		Perks:            s.perks,
		ComboStreak:      s.comboStreak,
		TurnBonusPerLine: s.rules.TurnBonusPerLine,
	}, rolls)

	s.score += out.ScoreDelta
	s.turnsLeft += out.TurnsDelta
	s.comboStreak = out.ComboStreak
	s.bingoLines += out.BingoLines
	s.lastRolls = rolls

	result := model.DrawResult{
		Rolls:               rolls,
		Hits:                orEmpty(out.Hits),
		Misses:              orEmpty(out.Misses),
		NewlyCompletedLines: orEmpty(out.NewlyCompletedLines),
		ScoreDelta:          out.ScoreDelta,
		TurnsDelta:          out.TurnsDelta - 1,
		Exhausted:           roll.ExhaustedPositions(candidates),
	}
	s.logDraw(candidates, out)

	s.logger.Debug("draw resolved",
		slog.Int("draw", s.drawCount),
		slog.Int("rolls", len(rolls)),
		slog.Int("hits", len(out.Hits)),
		slog.Int("score_delta", out.ScoreDelta),
		slog.Int("turns_left", s.turnsLeft),
	)

	if ending := s.checkEnd(); ending != nil {
		result.Ended = ending
		return result
	}

	if s.drawCount%s.rules.PerkInterval == 0 {
		s.offer = s.registry.Offer(s.random, s.rules.PerkOfferSize)
		s.phase = model.PhaseAwaitingPerkChoice
		result.PerkOffer = slices.Clone(s.offer)
		s.logs.add("Perk offer: %s", joinIDs(s.offer))
		return result
	}

	s.phase = model.PhaseReady
	return result
}

func (s *Session) skipReason() model.SkipReason {
	switch {
	case s.drawing:
		return model.SkipDrawInFlight
	case s.phase == model.PhaseAwaitingPerkChoice:
		return model.SkipAwaitingPerk
	case s.phase == model.PhaseGameOver:
		return model.SkipGameOver
	}
	return model.SkipNone
}

// ChoosePerk applies one of the offered perks. Any id outside the current
// offer, or a call outside a pending choice, leaves the session unchanged and
// returns false.
func (s *Session) ChoosePerk(id model.PerkID) (model.Snapshot, bool) {
	if s.phase != model.PhaseAwaitingPerkChoice {
		s.logger.Debug("perk choice ignored", slog.String("perk", string(id)), slog.String("phase", string(s.phase)))
		return s.Snapshot(), false
	}
	if !slices.Contains(s.offer, id) {
		s.logger.Debug("perk not offered", slog.String("perk", string(id)))
		s.logs.add("%s is not on offer", id)
		return s.Snapshot(), false
	}

	previous, err := s.perks.Acquire(id, sessionEditor{s})
	if err != nil {
		s.logger.Warn("perk acquire failed", slog.String("perk", string(id)), slog.String("error", err.Error()))
		return s.Snapshot(), false
	}
	s.offer = nil

	def, _ := s.registry.Get(id)
	s.logs.add("Picked %s (x%d)", def.Name, previous+1)
	s.logger.Info("perk chosen", slog.String("perk", string(id)), slog.Int("count", previous+1))

	if s.board.AllOpened() {
		s.end(model.EndAllOpen)
	} else {
		s.phase = model.PhaseReady
	}
	return s.Snapshot(), true
}

func (s *Session) checkEnd() *model.Ending {
	switch {
	case s.board.AllOpened():
		return s.end(model.EndAllOpen)
	case s.turnsLeft <= 0:
		return s.end(model.EndNoTurns)
	}
	return nil
}

func (s *Session) end(reason model.EndReason) *model.Ending {
	s.phase = model.PhaseGameOver
	s.endReason = reason
	s.offer = nil
	s.logs.add("Game over (%s): %d points, rank %s", reason, s.score, Rank(s.score))
	s.logger.Info("session over",
		slog.String("reason", string(reason)),
		slog.Int("score", s.score),
		slog.Int("draws", s.drawCount),
	)
	return &model.Ending{Reason: reason}
}

// Snapshot returns a read-only copy of the session state
func (s *Session) Snapshot() model.Snapshot {
	return model.Snapshot{
		Board:       slices.Clone(s.board.Cells),
		Size:        s.board.Size,
		NumberRange: s.rng,
		Score:       s.score,
		Rank:        Rank(s.score),
		TurnsLeft:   s.turnsLeft,
		DrawCount:   s.drawCount,
		BingoLines:  s.bingoLines,
		ComboStreak: s.comboStreak,
		ActivePerks: s.perks.Active(),
		Logs:        s.logs.snapshot(),
		Phase:       s.phase,
		PerkOffer:   orEmpty(slices.Clone(s.offer)),
		EndReason:   s.endReason,
		LastRolls:   orEmpty(slices.Clone(s.lastRolls)),
		Seed:        s.seed,
	}
}

func (s *Session) logDraw(candidates []roll.Candidate, out scoring.Outcome) {
	values := make([]string, len(candidates))
	for i, c := range candidates {
		values[i] = strconv.Itoa(c.Value)
		if c.Exhausted {
			values[i] += "!"
		}
	}
	s.logs.add("Draw %d: rolled %s, %d hit(s), +%d", s.drawCount, strings.Join(values, " "), len(out.Hits), out.ScoreDelta)
	for _, b := range out.LineBonuses {
		s.logs.add("BINGO x%d on %d: +%d, +%d turns", len(b.Lines), b.Roll, b.Score, b.Turns)
	}
	if out.FeverBonus > 0 {
		s.logs.add("Seven Fever +%d", out.FeverBonus)
	}
	if out.BurstBonus > 0 {
		s.logs.add("Burst Chain +%d", out.BurstBonus)
	}
	if out.ComboBonus > 0 {
		s.logs.add("Combo Drive x%d +%d", out.ComboStreak, out.ComboBonus)
	}
}

// sessionEditor exposes board mutations to perks acquired by the session
type sessionEditor struct {
	s *Session
}

func (e sessionEditor) ResizeBoard(delta int) {
	s := e.s
	res := s.boards.Resize(s.board, &s.rng, delta)
	if !res.Changed {
		s.logs.add("Board already at %dx%d; range grew to %d", res.NewSize, res.NewSize, res.RangeMax)
		return
	}
	s.tracker.Rebuild(s.board)
	s.logs.add("Board resized to %dx%d; range grew to %d", res.NewSize, res.NewSize, res.RangeMax)
}

func (e sessionEditor) UnlockNegatives() {
	s := e.s
	if !s.rng.UnlockNegative() {
		return
	}
	flipped := s.boards.SeedNegatives(s.board, s.rng)
	s.logs.add("Negatives unlocked: range %d..%d, %d cell(s) flipped", s.rng.Min, s.rng.Max, len(flipped))
}

func joinIDs(ids []model.PerkID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
