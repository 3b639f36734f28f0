package runs

import (
	"time"

	"github.com/mcoot/roguebingo/internal/model"
)

// Summarize builds the leaderboard record of a finished run
func Summarize(id model.RunID, snap model.Snapshot, finishedAt time.Time) *model.RunSummary {
	perks := make(map[model.PerkID]int, len(snap.ActivePerks))
	for _, p := range snap.ActivePerks {
		perks[p.ID] = p.Count
	}
	return &model.RunSummary{
		ID:         id,
		Seed:       snap.Seed,
		Score:      snap.Score,
		Rank:       snap.Rank,
		BingoLines: snap.BingoLines,
		Draws:      snap.DrawCount,
		FinalSize:  snap.Size,
		EndReason:  snap.EndReason,
		Perks:      perks,
		FinishedAt: finishedAt,
	}
}
