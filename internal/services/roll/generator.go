package roll

import (
	"log/slog"

	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/services/board"
	"github.com/mcoot/roguebingo/internal/services/perk"
)

// maxAttempts bounds rejection sampling per candidate
const maxAttempts = 60

// Candidate is one generated roll
type Candidate struct {
	Value      int
	Guided     bool // picked from an unopened cell rather than the range
	Rejections int  // samples discarded by filters
	Exhausted  bool // attempts ran out and the value skipped the filters
}

// Generator produces roll batches
type Generator struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new roll Generator
func New(random random.Random, logger *slog.Logger) *Generator {
	return &Generator{
		random: random,
		logger: logger,
	}
}

// Generate produces plan.BatchSize candidates against the current board
func (g *Generator) Generate(b *model.Board, rng model.NumberRange, plan perk.RollPlan, filters []perk.RollFilter) []Candidate {
	targets := aimTargets(b, filters)
	out := make([]Candidate, 0, plan.BatchSize)
	for i := 0; i < plan.BatchSize; i++ {
		c := g.next(targets, rng, plan, filters)
		if c.Exhausted {
			g.logger.Info("roll filters exhausted",
				slog.Int("position", i),
				slog.Int("value", c.Value),
				slog.Int("rejections", c.Rejections),
			)
		}
		out = append(out, c)
	}
	return out
}

func (g *Generator) next(targets []int, rng model.NumberRange, plan perk.RollPlan, filters []perk.RollFilter) Candidate {
	c := Candidate{}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if plan.AimChance > 0 && g.random.Float64() < plan.AimChance && len(targets) > 0 {
			c.Value = targets[g.random.Intn(len(targets))]
			c.Guided = true
			return c
		}

		v := g.uniform(rng, plan)
		if rejected(v, filters) {
			c.Rejections++
			continue
		}
		c.Value = v
		return c
	}

	c.Value = g.uniform(rng, plan)
	c.Exhausted = true
	return c
}

func (g *Generator) uniform(rng model.NumberRange, plan perk.RollPlan) int {
	v := board.SampleNonZero(g.random, rng.Min, rng.Max)
	if plan.NegateChance > 0 && g.random.Float64() < plan.NegateChance {
		v = -v
	}
	return v
}

// aimTargets lists the numbers of unopened cells that pass every filter
func aimTargets(b *model.Board, filters []perk.RollFilter) []int {
	var targets []int
	for _, cell := range b.Cells {
		if cell.Opened || rejected(cell.Number, filters) {
			continue
		}
		targets = append(targets, cell.Number)
	}
	return targets
}

func rejected(v int, filters []perk.RollFilter) bool {
	for _, f := range filters {
		if f.Rejects(v) {
			return true
		}
	}
	return false
}

// Values extracts the rolled numbers in batch order
func Values(candidates []Candidate) []int {
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.Value
	}
	return out
}

// ExhaustedPositions returns the batch positions that skipped the filters
func ExhaustedPositions(candidates []Candidate) []int {
	var out []int
	for i, c := range candidates {
		if c.Exhausted {
			out = append(out, i)
		}
	}
	return out
}
