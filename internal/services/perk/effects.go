package perk

import "github.com/mcoot/roguebingo/internal/model"

type resizeEffect struct {
	delta int
}

func (e resizeEffect) OnAcquire(editor BoardEditor, _ int) {
	editor.ResizeBoard(e.delta)
}

// Only the first copy unlocks; later copies just raise the count
type negativeUnlockEffect struct{}

func (negativeUnlockEffect) OnAcquire(editor BoardEditor, previous int) {
	if previous == 0 {
		editor.UnlockNegatives()
	}
}

type primeFilter struct{}

func (primeFilter) Rejects(value int) bool {
	return IsPrime(abs(value))
}

type perfectFilter struct{}

func (perfectFilter) Rejects(value int) bool {
	return IsPerfect(abs(value))
}

type absoluteMatch struct{}

func (absoluteMatch) ModifyMatch(rule *MatchRule, _ int) {
	rule.Absolute = true
}

type multiRoll struct{}

func (multiRoll) ModifyRoll(plan *RollPlan, count int) {
	plan.BatchSize += count
}

type guidedAim struct{}

func (guidedAim) ModifyRoll(plan *RollPlan, count int) {
	plan.AimChance = min(0.18*float64(count), 0.72)
}

type negativeShift struct{}

func (negativeShift) ModifyRoll(plan *RollPlan, count int) {
	plan.NegateChance = min(0.2*float64(count), 0.85)
}

type hitScoreBoost struct{}

func (hitScoreBoost) ModifyScore(event ScoreEvent, count int, adj *ScoreAdjust) {
	if event.Hook == HookHit {
		adj.Percent += 32 * count
	}
}

type bingoScoreBoost struct{}

func (bingoScoreBoost) ModifyScore(event ScoreEvent, count int, adj *ScoreAdjust) {
	if event.Hook == HookBingo {
		adj.Percent += 30 * count
	}
}

type sevenFever struct{}

func (sevenFever) ModifyScore(event ScoreEvent, count int, adj *ScoreAdjust) {
	roll := abs(event.Roll)
	if event.Hook != HookHit || roll == 0 || roll%7 != 0 {
		return
	}
	adj.Bonuses = append(adj.Bonuses, Bonus{
		Kind:   BonusFever,
		Perk:   model.PerkSevenFever,
		Amount: (100 + roll*2) * count,
	})
}

type burstChain struct{}

func (burstChain) ModifyScore(event ScoreEvent, count int, adj *ScoreAdjust) {
	if event.Hook != HookBatch || event.Hits < 2 {
		return
	}
	adj.Bonuses = append(adj.Bonuses, Bonus{
		Kind:   BonusBurst,
		Perk:   model.PerkBurstChain,
		Amount: (event.Hits - 1) * 140 * count,
	})
}

type comboDrive struct{}

func (comboDrive) ModifyScore(event ScoreEvent, count int, adj *ScoreAdjust) {
	if event.Hook != HookBatch || event.ComboStreak < 2 || event.Hits == 0 {
		return
	}
	adj.Bonuses = append(adj.Bonuses, Bonus{
		Kind:   BonusCombo,
		Perk:   model.PerkComboDrive,
		Amount: (40 + event.Hits*25) * event.ComboStreak * count,
	})
}

type hitTurnBoost struct{}

func (hitTurnBoost) ModifyTurns(event TurnEvent, count int) int {
	if event.Hook == HookHit {
		return count
	}
	return 0
}

type missRefund struct{}

func (missRefund) ModifyTurns(event TurnEvent, count int) int {
	if event.Hook == HookBatch && event.Hits == 0 {
		return count
	}
	return 0
}
