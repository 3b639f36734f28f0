package perk

import (
	"github.com/mcoot/roguebingo/internal/model"
)

const (
	minBatchSize = 1
	maxBatchSize = 6
)

// Resolver derives active effects from perk counts. It is the only way other
// components query perks: nothing is cached, so effects always reflect the
// counts at the point of use.
type Resolver struct {
	registry *Registry
	counts   model.PerkCounts
}

// NewResolver creates a resolver over counts. The resolver mutates counts on Acquire.
func NewResolver(registry *Registry, counts model.PerkCounts) *Resolver {
	if counts == nil {
		counts = model.PerkCounts{}
	}
	return &Resolver{registry: registry, counts: counts}
}

// Registry returns the catalog the resolver reads
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Count returns the number of copies of a perk held
func (r *Resolver) Count(id model.PerkID) int {
	return r.counts.Count(id)
}

// Counts returns a copy of the held perk counts
func (r *Resolver) Counts() model.PerkCounts {
	return r.counts.Clone()
}

// each calls fn for every held perk in registry order
func (r *Resolver) each(fn func(def Definition, count int)) {
	for _, def := range r.registry.defs {
		if c := r.counts.Count(def.ID); c > 0 {
			fn(def, c)
		}
	}
}

// RollPlan returns the shape of the next batch
func (r *Resolver) RollPlan() RollPlan {
	plan := RollPlan{BatchSize: minBatchSize}
	r.each(func(def Definition, count int) {
		if m, ok := def.Effect.(RollModifier); ok {
			m.ModifyRoll(&plan, count)
		}
	})
	plan.BatchSize = max(minBatchSize, min(plan.BatchSize, maxBatchSize))
	return plan
}

// RollFilters returns the active filters in registry order
func (r *Resolver) RollFilters() []RollFilter {
	var filters []RollFilter
	r.each(func(def Definition, _ int) {
		if f, ok := def.Effect.(RollFilter); ok {
			filters = append(filters, f)
		}
	})
	return filters
}

// MatchRule returns how rolls are matched against cells
func (r *Resolver) MatchRule() MatchRule {
	var rule MatchRule
	r.each(func(def Definition, count int) {
		if m, ok := def.Effect.(MatchModifier); ok {
			m.ModifyMatch(&rule, count)
		}
	})
	return rule
}

// ScoreAdjust collects score modifiers for one hook point
func (r *Resolver) ScoreAdjust(event ScoreEvent) ScoreAdjust {
	adj := ScoreAdjust{Percent: 100}
	r.each(func(def Definition, count int) {
		if m, ok := def.Effect.(ScoreModifier); ok {
			m.ModifyScore(event, count, &adj)
		}
	})
	return adj
}

// TurnBonus sums perk turn gains for one hook point
func (r *Resolver) TurnBonus(event TurnEvent) int {
	total := 0
	r.each(func(def Definition, count int) {
		if m, ok := def.Effect.(TurnModifier); ok {
			total += m.ModifyTurns(event, count)
		}
	})
	return total
}

// Acquire adds one copy of a perk and applies any selection-time side effect.
// It returns the count held before the pick.
func (r *Resolver) Acquire(id model.PerkID, editor BoardEditor) (int, error) {
	def, ok := r.registry.Get(id)
	if !ok {
		return 0, model.ErrUnknownPerk
	}
	previous := r.counts.Add(id)
	if m, ok := def.Effect.(BoardModifier); ok && editor != nil {
		m.OnAcquire(editor, previous)
	}
	return previous, nil
}

// Active lists held perks in registry order
func (r *Resolver) Active() []model.ActivePerk {
	active := []model.ActivePerk{}
	r.each(func(def Definition, count int) {
		active = append(active, model.ActivePerk{ID: def.ID, Name: def.Name, Count: count})
	})
	return active
}
