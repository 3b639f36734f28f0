package scoring

import (
	"log/slog"

	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/services/lines"
	"github.com/mcoot/roguebingo/internal/services/perk"
)

const (
	minHitScore     = 22
	lineBaseScore   = 250
	lineSquareBonus = 70
	sizeScaleStep   = 12 // percent per cell of growth past the initial size
)

// Table is the mutable state a batch resolves against
type Table struct {
	Board            *model.Board
	Tracker          *lines.Tracker
	Perks            *perk.Resolver
	ComboStreak      int
	TurnBonusPerLine int
}

// LineBonus is the award for the lines one roll completed
type LineBonus struct {
	Roll  int   `json:"roll"`
	Lines []int `json:"lines"`
	Score int   `json:"score"`
	Turns int   `json:"turns"`
}

// Outcome summarises a resolved batch
type Outcome struct {
	Hits                []model.Hit
	Misses              []int
	LineBonuses         []LineBonus
	NewlyCompletedLines []int
	FeverBonus          int
	BurstBonus          int
	ComboBonus          int
	ScoreDelta          int
	TurnsDelta          int // turns gained; the draw's own cost is not included
	ComboStreak         int // streak after this batch
	BingoLines          int // lines completed by this batch
}

// Service resolves roll batches against a board
type Service struct {
	logger *slog.Logger
}

// New creates a new scoring Service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// HitScore returns the points for opening a cell holding number,
// scaled by a percentage (100 is unmodified)
func HitScore(number, percent int) int {
	base := max(minHitScore, abs(number)*18/10)
	return base * percent / 100
}

// LineScore returns the unboosted points for completing count lines with one
// roll on a board grown by growth cells past its initial size
func LineScore(count, roll, growth int) int {
	base := lineBaseScore + abs(roll)*10
	raw := count*base + count*count*lineSquareBonus
	scale := max(0, 100+growth*sizeScaleStep)
	return raw * scale / 100
}

// Resolve applies rolls in batch order, opening matched cells and awarding
// hit, bingo and batch bonuses. It mutates the board and tracker.
func (s *Service) Resolve(t Table, rolls []int) Outcome {
	out := Outcome{}
	rule := t.Perks.MatchRule()
	growth := t.Board.Size - t.Board.InitialSize

	for _, roll := range rolls {
		idx := match(t.Board, rule, roll)
		if idx < 0 {
			out.Misses = append(out.Misses, roll)
			continue
		}

		cell := &t.Board.Cells[idx]
		cell.Opened = true

		hitEvent := perk.ScoreEvent{Hook: perk.HookHit, Roll: roll, Number: cell.Number}
		adj := t.Perks.ScoreAdjust(hitEvent)
		hit := model.Hit{
			Index:  idx,
			Number: cell.Number,
			Roll:   roll,
			Score:  HitScore(cell.Number, adj.Percent),
		}
		out.Hits = append(out.Hits, hit)
		out.ScoreDelta += hit.Score
		out.TurnsDelta += 1 + t.Perks.TurnBonus(perk.TurnEvent{Hook: perk.HookHit})

		if fever := adj.BonusTotal(perk.BonusFever); fever > 0 {
			out.FeverBonus += fever
			out.ScoreDelta += fever
		}

		found := t.Tracker.Check(t.Board)
		if len(found) == 0 {
			continue
		}
		bingo := t.Perks.ScoreAdjust(perk.ScoreEvent{
			Hook:   perk.HookBingo,
			Roll:   roll,
			Number: cell.Number,
			Lines:  len(found),
		})
		bonus := LineBonus{
			Roll:  roll,
			Lines: found,
			Score: bingo.Apply(LineScore(len(found), roll, growth)),
			Turns: len(found) * t.TurnBonusPerLine,
		}
		out.LineBonuses = append(out.LineBonuses, bonus)
		out.NewlyCompletedLines = append(out.NewlyCompletedLines, found...)
		out.BingoLines += len(found)
		out.ScoreDelta += bonus.Score
		out.TurnsDelta += bonus.Turns

		s.logger.Debug("lines completed",
			slog.Int("roll", roll),
			slog.Int("lines", len(found)),
			slog.Int("score", bonus.Score),
		)
	}

	hits := len(out.Hits)
	if hits > 0 {
		out.ComboStreak = t.ComboStreak + 1
	}

	out.TurnsDelta += t.Perks.TurnBonus(perk.TurnEvent{Hook: perk.HookBatch, Hits: hits})

	batch := t.Perks.ScoreAdjust(perk.ScoreEvent{
		Hook:        perk.HookBatch,
		Hits:        hits,
		ComboStreak: out.ComboStreak,
	})
	out.BurstBonus = batch.BonusTotal(perk.BonusBurst)
	out.ComboBonus = batch.BonusTotal(perk.BonusCombo)
	out.ScoreDelta += out.BurstBonus + out.ComboBonus

	return out
}

// match returns the first unopened cell the roll opens, or -1
func match(b *model.Board, rule perk.MatchRule, roll int) int {
	for i, cell := range b.Cells {
		if !cell.Opened && rule.Matches(cell.Number, roll) {
			return i
		}
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
