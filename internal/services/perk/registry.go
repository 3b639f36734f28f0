package perk

import (
	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/model"
)

// Definition is a registry entry. Effect implements one or more of the
// capability interfaces and is consulted by the Resolver at each hook point.
type Definition struct {
	ID          model.PerkID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Effect      any          `json:"-"`
}

// Registry is the static perk catalog. Registry order is display and offer order.
type Registry struct {
	defs []Definition
	byID map[model.PerkID]int
}

// NewRegistry returns the standard catalog
func NewRegistry() *Registry {
	return newRegistry([]Definition{
		{ID: model.PerkColumnUp, Name: "Column Up", Description: "Grow the board by one row and column", Effect: resizeEffect{delta: 1}},
		{ID: model.PerkColumnDown, Name: "Column Down", Description: "Shrink the board by one row and column", Effect: resizeEffect{delta: -1}},
		{ID: model.PerkNoPrime, Name: "No Prime", Description: "Rolls avoid prime numbers", Effect: primeFilter{}},
		{ID: model.PerkNoPerfect, Name: "No Perfect", Description: "Rolls avoid perfect numbers", Effect: perfectFilter{}},
		{ID: model.PerkNegativeUnlock, Name: "Negative Unlock", Description: "Open the range below zero and seed negatives on expanded cells", Effect: negativeUnlockEffect{}},
		{ID: model.PerkAbsoluteLock, Name: "Absolute Lock", Description: "Rolls match cells by absolute value", Effect: absoluteMatch{}},
		{ID: model.PerkMultiRoll, Name: "Multi Roll", Description: "Roll one more number per draw", Effect: multiRoll{}},
		{ID: model.PerkGuidedAim, Name: "Guided Aim", Description: "Rolls sometimes target an unopened cell", Effect: guidedAim{}},
		{ID: model.PerkNegativeShift, Name: "Negative Shift", Description: "Rolls are sometimes flipped below zero", Effect: negativeShift{}},
		{ID: model.PerkHitScoreBoost, Name: "Hit Score Boost", Description: "Hits score 32% more", Effect: hitScoreBoost{}},
		{ID: model.PerkBingoScoreBoost, Name: "Bingo Score Boost", Description: "Bingos score 30% more", Effect: bingoScoreBoost{}},
		{ID: model.PerkSevenFever, Name: "Seven Fever", Description: "Hits on multiples of seven earn a bonus", Effect: sevenFever{}},
		{ID: model.PerkBurstChain, Name: "Burst Chain", Description: "Several hits in one draw earn a bonus", Effect: burstChain{}},
		{ID: model.PerkComboDrive, Name: "Combo Drive", Description: "Consecutive hitting draws earn a growing bonus", Effect: comboDrive{}},
		{ID: model.PerkHitTurnBoost, Name: "Hit Turn Boost", Description: "Each hit refunds one more turn", Effect: hitTurnBoost{}},
		{ID: model.PerkMissRefund, Name: "Miss Refund", Description: "A draw with no hits refunds a turn", Effect: missRefund{}},
	})
}

func newRegistry(defs []Definition) *Registry {
	byID := make(map[model.PerkID]int, len(defs))
	for i, d := range defs {
		byID[d.ID] = i
	}
	return &Registry{defs: defs, byID: byID}
}

// All returns every definition in registry order
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Get looks up a definition by id
func (r *Registry) Get(id model.PerkID) (Definition, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Len returns the number of perks in the catalog
func (r *Registry) Len() int {
	return len(r.defs)
}

// Offer samples n distinct perks without replacement from the whole catalog.
// Held perks stay eligible so picks can stack.
func (r *Registry) Offer(rnd random.Random, n int) []model.PerkID {
	ids := make([]model.PerkID, len(r.defs))
	for i, d := range r.defs {
		ids[i] = d.ID
	}
	n = min(n, len(ids))
	for i := 0; i < n; i++ {
		j := i + rnd.Intn(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:n]
}
