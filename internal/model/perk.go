package model

// PerkID identifies a perk in the registry
type PerkID string

const (
	PerkColumnUp        PerkID = "column_up"
	PerkColumnDown      PerkID = "column_down"
	PerkNoPrime         PerkID = "no_prime"
	PerkNoPerfect       PerkID = "no_perfect"
	PerkNegativeUnlock  PerkID = "negative_unlock"
	PerkAbsoluteLock    PerkID = "absolute_lock"
	PerkMultiRoll       PerkID = "multi_roll"
	PerkGuidedAim       PerkID = "guided_aim"
	PerkNegativeShift   PerkID = "negative_shift"
	PerkHitScoreBoost   PerkID = "hit_score_boost"
	PerkBingoScoreBoost PerkID = "bingo_score_boost"
	PerkSevenFever      PerkID = "seven_fever"
	PerkBurstChain      PerkID = "burst_chain"
	PerkComboDrive      PerkID = "combo_drive"
	PerkHitTurnBoost    PerkID = "hit_turn_boost"
	PerkMissRefund      PerkID = "miss_refund"
)

// PerkCounts tracks how many copies of each perk the player holds.
// Counts only grow; an absent entry means zero.
type PerkCounts map[PerkID]int

// Count returns the number of copies held
func (c PerkCounts) Count(id PerkID) int {
	return c[id]
}

// Add increments a perk and returns the previous count
func (c PerkCounts) Add(id PerkID) int {
	prev := c[id]
	c[id] = prev + 1
	return prev
}

// Clone returns an independent copy
func (c PerkCounts) Clone() PerkCounts {
	out := make(PerkCounts, len(c))
	for id, n := range c {
		out[id] = n
	}
	return out
}

// ActivePerk is a held perk as shown to the player
type ActivePerk struct {
	ID    PerkID `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
