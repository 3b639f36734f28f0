package model

import "time"

// RunID uniquely identifies a hosted run
type RunID string

// Phase represents the current state of a session
type Phase string

const (
	PhaseReady              Phase = "ready"
	PhaseDrawInProgress     Phase = "draw_in_progress"
	PhaseAwaitingPerkChoice Phase = "awaiting_perk_choice"
	PhaseGameOver           Phase = "game_over"
)

// EndReason explains why a session reached game over
type EndReason string

const (
	EndAllOpen EndReason = "all-open"
	EndNoTurns EndReason = "no-turns"
)

// SkipReason explains why a draw request did nothing
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipAwaitingPerk SkipReason = "awaiting_perk_choice"
	SkipGameOver     SkipReason = "game_over"
	SkipDrawInFlight SkipReason = "draw_in_flight"
)

// Ending records a terminal transition
type Ending struct {
	Reason EndReason `json:"reason"`
}

// Hit is a roll that opened a cell
type Hit struct {
	Index  int `json:"index"`
	Number int `json:"number"`
	Roll   int `json:"roll"`
	Score  int `json:"score"`
}

// DrawResult is everything a single draw produced
type DrawResult struct {
	Rolls               []int      `json:"rolls"`
	Hits                []Hit      `json:"hits"`
	Misses              []int      `json:"misses"`
	NewlyCompletedLines []int      `json:"newly_completed_lines"`
	ScoreDelta          int        `json:"score_delta"`
	TurnsDelta          int        `json:"turns_delta"`
	PerkOffer           []PerkID   `json:"perk_offer"`
	Ended               *Ending    `json:"ended"`
	Skipped             SkipReason `json:"skipped,omitempty"`
	// Exhausted lists batch positions whose rejection sampling ran out of attempts
	Exhausted []int `json:"exhausted,omitempty"`
}

// Snapshot is a read-only copy of a session's state
type Snapshot struct {
	Board       []Cell       `json:"board"`
	Size        int          `json:"size"`
	NumberRange NumberRange  `json:"number_range"`
	Score       int          `json:"score"`
	Rank        string       `json:"rank"`
	TurnsLeft   int          `json:"turns_left"`
	DrawCount   int          `json:"draw_count"`
	BingoLines  int          `json:"bingo_lines"`
	ComboStreak int          `json:"combo_streak"`
	ActivePerks []ActivePerk `json:"active_perks"`
	Logs        []string     `json:"logs"`
	Phase       Phase        `json:"phase"`
	PerkOffer   []PerkID     `json:"perk_offer"`
	EndReason   EndReason    `json:"end_reason,omitempty"`
	LastRolls   []int        `json:"last_rolls"`
	Seed        uint64       `json:"seed"`
}

// RunSummary is the leaderboard record of a finished run
type RunSummary struct {
	ID         RunID          `json:"id"`
	Seed       uint64         `json:"seed"`
	Score      int            `json:"score"`
	Rank       string         `json:"rank"`
	BingoLines int            `json:"bingo_lines"`
	Draws      int            `json:"draws"`
	FinalSize  int            `json:"final_size"`
	EndReason  EndReason      `json:"end_reason"`
	Perks      map[PerkID]int `json:"perks"`
	FinishedAt time.Time      `json:"finished_at"`
}
