package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/mcoot/roguebingo/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return NewOutputTo(format, os.Stdout)
}

// NewOutputTo creates an Output formatter writing to w
func NewOutputTo(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Run:
		o.printRun(v)
	case response.DrawResponse:
		o.printDraw(v.Result)
		fmt.Fprintln(o.w)
		o.printRun(v.Run)
	case response.PerkList:
		o.printPerks(v)
	case response.Leaderboard:
		o.printLeaderboard(v)
	case response.RunSummary:
		o.printSummary(v)
	case response.Health:
		o.printHealth(v)
	case SimulationReport:
		o.printSimulation(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRun(r response.Run) {
	if r.ID != "" {
		fmt.Fprintf(o.w, "Run: %s (seed %d)\n", r.ID, r.Seed)
	}
	fmt.Fprintf(o.w, "Phase: %s\n", r.Phase)
	fmt.Fprintf(o.w, "Score: %d  Rank: %s  Lines: %d  Combo: %d\n", r.Score, r.Rank, r.BingoLines, r.ComboStreak)
	fmt.Fprintf(o.w, "Turns left: %d  Draws: %d\n", r.TurnsLeft, r.DrawCount)

	neg := ""
	if r.NumberRange.Negative {
		neg = " (negatives unlocked)"
	}
	fmt.Fprintf(o.w, "Range: %d..%d%s\n", r.NumberRange.Min, r.NumberRange.Max, neg)

	o.printBoard(r.Board)

	if len(r.ActivePerks) > 0 {
		held := make([]string, len(r.ActivePerks))
		for i, p := range r.ActivePerks {
			held[i] = fmt.Sprintf("%s x%d", p.Name, p.Count)
		}
		fmt.Fprintf(o.w, "Perks: %s\n", strings.Join(held, ", "))
	}
	if len(r.PerkOffer) > 0 {
		fmt.Fprintln(o.w, "Choose a perk:")
		for i, id := range r.PerkOffer {
			fmt.Fprintf(o.w, "  %d) %s\n", i+1, id)
		}
	}
	if r.EndReason != nil {
		fmt.Fprintf(o.w, "Game over: %s\n", *r.EndReason)
	}
}

// printBoard marks opened cells with brackets and completed lines with angle brackets
func (o *Output) printBoard(b response.Board) {
	for _, row := range b.Cells {
		var sb strings.Builder
		for _, c := range row {
			switch {
			case c.InLine:
				fmt.Fprintf(&sb, "<%3d>", c.Number)
			case c.Opened:
				fmt.Fprintf(&sb, "[%3d]", c.Number)
			default:
				fmt.Fprintf(&sb, " %3d ", c.Number)
			}
		}
		fmt.Fprintln(o.w, strings.TrimRight(sb.String(), " "))
	}
}

func (o *Output) printDraw(d response.Draw) {
	if d.Skipped != "" {
		fmt.Fprintf(o.w, "Draw ignored: %s\n", d.Skipped)
		return
	}
	fmt.Fprintf(o.w, "Rolled: %s\n", joinInts(d.Rolls))
	for _, h := range d.Hits {
		fmt.Fprintf(o.w, "  hit %d with %d (+%d)\n", h.Number, h.Roll, h.Score)
	}
	if len(d.Misses) > 0 {
		fmt.Fprintf(o.w, "  missed: %s\n", joinInts(d.Misses))
	}
	if len(d.NewlyCompletedLines) > 0 {
		fmt.Fprintf(o.w, "  BINGO x%d\n", len(d.NewlyCompletedLines))
	}
	fmt.Fprintf(o.w, "Score %+d, turns %+d\n", d.ScoreDelta, d.TurnsDelta)
}

func (o *Output) printPerks(l response.PerkList) {
	for _, p := range l.Perks {
		fmt.Fprintf(o.w, "%-18s %s: %s\n", p.ID, p.Name, p.Description)
	}
}

func (o *Output) printLeaderboard(l response.Leaderboard) {
	if len(l.Runs) == 0 {
		fmt.Fprintln(o.w, "No finished runs yet")
		return
	}
	for i, r := range l.Runs {
		fmt.Fprintf(o.w, "%2d. %-10s %7d  %s  lines %d  draws %d  (%s)\n",
			i+1, r.ID, r.Score, r.Rank, r.BingoLines, r.Draws, r.EndReason)
	}
}

func (o *Output) printSummary(r response.RunSummary) {
	fmt.Fprintf(o.w, "Run: %s (seed %d)\n", r.ID, r.Seed)
	fmt.Fprintf(o.w, "Score: %d  Rank: %s\n", r.Score, r.Rank)
	fmt.Fprintf(o.w, "Lines: %d  Draws: %d  Final size: %d\n", r.BingoLines, r.Draws, r.FinalSize)
	fmt.Fprintf(o.w, "Ended: %s at %s\n", r.EndReason, r.FinishedAt.Format("2006-01-02 15:04:05"))
	for _, id := range slices.Sorted(maps.Keys(r.Perks)) {
		fmt.Fprintf(o.w, "  %s x%d\n", id, r.Perks[id])
	}
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
}

func (o *Output) printSimulation(r SimulationReport) {
	fmt.Fprintf(o.w, "Runs: %d  Mean score: %d  Best: %d (seed %d)\n", r.Runs, r.MeanScore, r.BestScore, r.BestSeed)
	for _, rc := range r.Ranks {
		fmt.Fprintf(o.w, "  %s %4d\n", rc.Rank, rc.Count)
	}
	if r.Unfinished > 0 {
		fmt.Fprintf(o.w, "Unfinished (draw cap reached): %d\n", r.Unfinished)
	}
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
