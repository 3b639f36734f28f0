package response

import (
	"time"

	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/services/perk"
	"github.com/mcoot/roguebingo/internal/services/runs"
)

// Cell represents one board cell
type Cell struct {
	Number   int  `json:"number"`
	Opened   bool `json:"opened"`
	InLine   bool `json:"in_line"`
	Expanded bool `json:"expanded"`
}

// Board represents a board as rows of cells
type Board struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"`
}

// BoardFromCells converts a flat row-major cell slice
func BoardFromCells(size int, cells []model.Cell) Board {
	rows := make([][]Cell, size)
	for row := 0; row < size; row++ {
		rows[row] = make([]Cell, size)
		for col := 0; col < size; col++ {
			c := cells[row*size+col]
			rows[row][col] = Cell{
				Number:   c.Number,
				Opened:   c.Opened,
				InLine:   c.InCompletedLine,
				Expanded: c.IsExpanded,
			}
		}
	}
	return Board{Size: size, Cells: rows}
}

// Flat returns the cells in row-major order
func (b Board) Flat() []Cell {
	out := make([]Cell, 0, b.Size*b.Size)
	for _, row := range b.Cells {
		out = append(out, row...)
	}
	return out
}

// NumberRange represents the roll range
type NumberRange struct {
	Min      int  `json:"min"`
	Max      int  `json:"max"`
	Negative bool `json:"negative"`
}

// ActivePerk represents a held perk
type ActivePerk struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Run represents a hosted run
type Run struct {
	ID          string       `json:"id"`
	Phase       string       `json:"phase"`
	Board       Board        `json:"board"`
	NumberRange NumberRange  `json:"number_range"`
	Score       int          `json:"score"`
	Rank        string       `json:"rank"`
	TurnsLeft   int          `json:"turns_left"`
	DrawCount   int          `json:"draw_count"`
	BingoLines  int          `json:"bingo_lines"`
	ComboStreak int          `json:"combo_streak"`
	ActivePerks []ActivePerk `json:"active_perks"`
	PerkOffer   []string     `json:"perk_offer"`
	EndReason   *string      `json:"end_reason"`
	LastRolls   []int        `json:"last_rolls"`
	Logs        []string     `json:"logs"`
	Seed        uint64       `json:"seed"`
}

// RunFromSnapshot converts a snapshot of a hosted run
func RunFromSnapshot(id model.RunID, s model.Snapshot) Run {
	active := make([]ActivePerk, len(s.ActivePerks))
	for i, p := range s.ActivePerks {
		active[i] = ActivePerk{ID: string(p.ID), Name: p.Name, Count: p.Count}
	}

	var endReason *string
	if s.EndReason != "" {
		r := string(s.EndReason)
		endReason = &r
	}

	return Run{
		ID:    string(id),
		Phase: string(s.Phase),
		Board: BoardFromCells(s.Size, s.Board),
		NumberRange: NumberRange{
			Min:      s.NumberRange.Min,
			Max:      s.NumberRange.Max,
			Negative: s.NumberRange.Negative,
		},
		Score:       s.Score,
		Rank:        s.Rank,
		TurnsLeft:   s.TurnsLeft,
		DrawCount:   s.DrawCount,
		BingoLines:  s.BingoLines,
		ComboStreak: s.ComboStreak,
		ActivePerks: active,
		PerkOffer:   perkIDs(s.PerkOffer),
		EndReason:   endReason,
		LastRolls:   nonNilInts(s.LastRolls),
		Logs:        s.Logs,
		Seed:        s.Seed,
	}
}

// RunFromModel converts a controller run
func RunFromModel(r *runs.Run) Run {
	return RunFromSnapshot(r.ID, r.Snapshot)
}

// Hit represents a roll that opened a cell
type Hit struct {
	Index  int `json:"index"`
	Number int `json:"number"`
	Roll   int `json:"roll"`
	Score  int `json:"score"`
}

// Draw represents what a draw produced
type Draw struct {
	Rolls               []int    `json:"rolls"`
	Hits                []Hit    `json:"hits"`
	Misses              []int    `json:"misses"`
	NewlyCompletedLines []int    `json:"newly_completed_lines"`
	ScoreDelta          int      `json:"score_delta"`
	TurnsDelta          int      `json:"turns_delta"`
	PerkOffer           []string `json:"perk_offer"`
	Ended               *string  `json:"ended"`
	Skipped             string   `json:"skipped,omitempty"`
	Exhausted           []int    `json:"exhausted,omitempty"`
}

// DrawFromModel converts model.DrawResult
func DrawFromModel(d model.DrawResult) Draw {
	hits := make([]Hit, len(d.Hits))
	for i, h := range d.Hits {
		hits[i] = Hit{Index: h.Index, Number: h.Number, Roll: h.Roll, Score: h.Score}
	}

	var offer []string
	if d.PerkOffer != nil {
		offer = perkIDs(d.PerkOffer)
	}

	var ended *string
	if d.Ended != nil {
		r := string(d.Ended.Reason)
		ended = &r
	}

	return Draw{
		Rolls:               nonNilInts(d.Rolls),
		Hits:                hits,
		Misses:              nonNilInts(d.Misses),
		NewlyCompletedLines: nonNilInts(d.NewlyCompletedLines),
		ScoreDelta:          d.ScoreDelta,
		TurnsDelta:          d.TurnsDelta,
		PerkOffer:           offer,
		Ended:               ended,
		Skipped:             string(d.Skipped),
		Exhausted:           d.Exhausted,
	}
}

// DrawResponse is the response after a draw
type DrawResponse struct {
	Result Draw `json:"result"`
	Run    Run  `json:"run"`
}

// DrawResponseFromModel converts a controller draw outcome
func DrawResponseFromModel(o *runs.DrawOutcome) DrawResponse {
	return DrawResponse{
		Result: DrawFromModel(o.Result),
		Run:    RunFromSnapshot(o.ID, o.Snapshot),
	}
}

// Perk represents a catalog entry
type Perk struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PerksFromRegistry lists the catalog in registry order
func PerksFromRegistry(r *perk.Registry) []Perk {
	defs := r.All()
	out := make([]Perk, len(defs))
	for i, d := range defs {
		out[i] = Perk{ID: string(d.ID), Name: d.Name, Description: d.Description}
	}
	return out
}

// PerkList is the response for the perk catalog
type PerkList struct {
	Perks []Perk `json:"perks"`
}

// RunSummary represents a finished run on the leaderboard
type RunSummary struct {
	ID         string         `json:"id"`
	Seed       uint64         `json:"seed"`
	Score      int            `json:"score"`
	Rank       string         `json:"rank"`
	BingoLines int            `json:"bingo_lines"`
	Draws      int            `json:"draws"`
	FinalSize  int            `json:"final_size"`
	EndReason  string         `json:"end_reason"`
	Perks      map[string]int `json:"perks"`
	FinishedAt time.Time      `json:"finished_at"`
}

// RunSummaryFromModel converts model.RunSummary
func RunSummaryFromModel(r *model.RunSummary) RunSummary {
	perks := make(map[string]int, len(r.Perks))
	for id, n := range r.Perks {
		perks[string(id)] = n
	}
	return RunSummary{
		ID:         string(r.ID),
		Seed:       r.Seed,
		Score:      r.Score,
		Rank:       r.Rank,
		BingoLines: r.BingoLines,
		Draws:      r.Draws,
		FinalSize:  r.FinalSize,
		EndReason:  string(r.EndReason),
		Perks:      perks,
		FinishedAt: r.FinishedAt,
	}
}

// Leaderboard is the response for the best recorded runs
type Leaderboard struct {
	Runs []RunSummary `json:"runs"`
}

// LeaderboardFromModel converts a ranked list of summaries
func LeaderboardFromModel(summaries []*model.RunSummary) Leaderboard {
	out := make([]RunSummary, len(summaries))
	for i, s := range summaries {
		out[i] = RunSummaryFromModel(s)
	}
	return Leaderboard{Runs: out}
}

// Health is the health check response
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

func perkIDs(ids []model.PerkID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
