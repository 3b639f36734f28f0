package perk

import "github.com/mcoot/roguebingo/internal/model"

// Hook identifies the point in a draw at which an effect is consulted
type Hook int

const (
	HookHit   Hook = iota // a roll opened a cell
	HookBingo             // one roll completed one or more lines
	HookBatch             // every roll of the draw has been resolved
)

// RollPlan is the shape of the next batch of rolls
type RollPlan struct {
	BatchSize    int
	AimChance    float64 // probability a candidate targets an unopened cell
	NegateChance float64 // probability a uniform sample is negated
}

// RollModifier changes how a batch is generated
type RollModifier interface {
	ModifyRoll(plan *RollPlan, count int)
}

// RollFilter rejects candidate values. Filters are presence gated: holding more
// than one copy does not filter any harder.
type RollFilter interface {
	Rejects(value int) bool
}

// MatchRule decides whether a roll opens a cell
type MatchRule struct {
	Absolute bool
}

// Matches reports whether roll opens a cell holding number
func (m MatchRule) Matches(number, roll int) bool {
	if m.Absolute {
		return abs(number) == abs(roll)
	}
	return number == roll
}

// MatchModifier changes how rolls are matched against cells
type MatchModifier interface {
	ModifyMatch(rule *MatchRule, count int)
}

// BonusKind labels a flat score bonus
type BonusKind string

const (
	BonusFever BonusKind = "fever"
	BonusBurst BonusKind = "burst"
	BonusCombo BonusKind = "combo"
)

// Bonus is a flat score award granted by a perk
type Bonus struct {
	Kind   BonusKind
	Perk   model.PerkID
	Amount int
}

// ScoreEvent describes a scoring hook point
type ScoreEvent struct {
	Hook        Hook
	Roll        int
	Number      int
	Lines       int // lines completed by this roll (bingo hook)
	Hits        int // hits in this batch (batch hook)
	ComboStreak int // streak after this batch (batch hook)
}

// ScoreAdjust accumulates multiplier percentages and flat bonuses
type ScoreAdjust struct {
	Percent int // 100 means unmodified
	Bonuses []Bonus
}

// Apply scales a base score by the accumulated percentage, rounding down
func (a ScoreAdjust) Apply(base int) int {
	return base * a.Percent / 100
}

// BonusTotal sums the flat bonuses of one kind
func (a ScoreAdjust) BonusTotal(kind BonusKind) int {
	total := 0
	for _, b := range a.Bonuses {
		if b.Kind == kind {
			total += b.Amount
		}
	}
	return total
}

// ScoreModifier adjusts scoring at the hit, bingo and batch hooks
type ScoreModifier interface {
	ModifyScore(event ScoreEvent, count int, adj *ScoreAdjust)
}

// TurnEvent describes a turn economy hook point
type TurnEvent struct {
	Hook Hook
	Hits int
}

// TurnModifier grants extra turns at the hit and batch hooks.
// Bingo turn gains are a fixed rule and never consult turn modifiers.
type TurnModifier interface {
	ModifyTurns(event TurnEvent, count int) int
}

// BoardEditor is the surface a perk may mutate when it is picked
type BoardEditor interface {
	ResizeBoard(delta int)
	UnlockNegatives()
}

// BoardModifier applies a one-shot side effect at selection time.
// previous is the count held before this pick.
type BoardModifier interface {
	OnAcquire(editor BoardEditor, previous int)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
