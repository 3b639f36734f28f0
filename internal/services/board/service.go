package board

import (
	"log/slog"
	"math"

	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/model"
)

const (
	// maxUniqueAttempts bounds random probing before the linear scan fallback
	maxUniqueAttempts = 900

	// negativeSeedRatio is the share of eligible cells flipped by SeedNegatives
	negativeSeedRatio = 0.35
)

// Settings bounds board geometry and range growth
type Settings struct {
	MinSize   int
	MaxSize   int
	RangeStep int
}

// Service owns board geometry, cell numbers and resizing
type Service struct {
	random   random.Random
	settings Settings
	logger   *slog.Logger
}

// New creates a new board Service
func New(random random.Random, settings Settings, logger *slog.Logger) *Service {
	return &Service{
		random:   random,
		settings: settings,
		logger:   logger,
	}
}

// ResizeResult describes what a resize did
type ResizeResult struct {
	OldSize    int
	NewSize    int
	Changed    bool  // false when the size was already at its bound
	AddedCells []int // flat indices of freshly numbered cells
	RangeMax   int   // number ceiling after the resize
}

// CreateUniqueNumber returns a nonzero number that is not in used.
// Negative values are only eligible when the range is unlocked and allowNegative is set.
func (s *Service) CreateUniqueNumber(rng model.NumberRange, used map[int]struct{}, allowNegative bool) int {
	lo, hi := rng.Min, rng.Max
	if lo < 1 && !allowNegative {
		lo = 1
	}

	for attempt := 0; attempt < maxUniqueAttempts; attempt++ {
		v := SampleNonZero(s.random, lo, hi)
		if _, taken := used[v]; !taken {
			return v
		}
	}

	for v := lo; v <= hi; v++ {
		if v == 0 {
			continue
		}
		if _, taken := used[v]; !taken {
			return v
		}
	}

	// Pool exhausted: step past the ceiling
	v := hi + len(used) + 1
	for {
		if _, taken := used[v]; !taken {
			break
		}
		v++
	}
	s.logger.Warn("number pool exhausted",
		slog.Int("min", lo),
		slog.Int("max", hi),
		slog.Int("used", len(used)),
		slog.Int("value", v),
	)
	return v
}

// BuildFreshBoard fills a new board row-major with unique numbers
func (s *Service) BuildFreshBoard(size, initialSize int, rng model.NumberRange) *model.Board {
	board := model.NewBoard(size, initialSize)
	used := make(map[int]struct{}, size*size)

	for i := range board.Cells {
		expanded := board.IsOutsideFootprint(board.PositionOf(i))
		n := s.CreateUniqueNumber(rng, used, expanded)
		used[n] = struct{}{}
		board.Cells[i] = model.Cell{Number: n, IsExpanded: expanded}
	}
	return board
}

// Resize grows or shrinks the board by delta, clamped to the size bounds.
// The number ceiling always grows by RangeStep, even when the size cannot change.
// Cells in the retained footprint keep their number and opened state; the
// caller must rebuild lines afterwards.
func (s *Service) Resize(board *model.Board, rng *model.NumberRange, delta int) ResizeResult {
	oldSize := board.Size
	newSize := clamp(oldSize+delta, s.settings.MinSize, s.settings.MaxSize)
	rng.Expand(s.settings.RangeStep)

	result := ResizeResult{
		OldSize:  oldSize,
		NewSize:  newSize,
		RangeMax: rng.Max,
	}
	if newSize == oldSize {
		s.logger.Debug("board resize clamped",
			slog.Int("size", oldSize),
			slog.Int("delta", delta),
			slog.Int("range_max", rng.Max),
		)
		return result
	}

	next := model.NewBoard(newSize, board.InitialSize)
	used := make(map[int]struct{}, len(next.Cells))
	keep := min(oldSize, newSize)

	for row := 0; row < keep; row++ {
		for col := 0; col < keep; col++ {
			cell := board.Cells[row*oldSize+col]
			cell.InCompletedLine = false
			next.Cells[row*newSize+col] = cell
			used[cell.Number] = struct{}{}
		}
	}

	for i := range next.Cells {
		pos := next.PositionOf(i)
		if pos.Row < keep && pos.Col < keep {
			continue
		}
		expanded := next.IsOutsideFootprint(pos)
		n := s.CreateUniqueNumber(*rng, used, expanded)
		used[n] = struct{}{}
		next.Cells[i] = model.Cell{Number: n, IsExpanded: expanded}
		result.AddedCells = append(result.AddedCells, i)
	}

	board.Size = next.Size
	board.Cells = next.Cells
	result.Changed = true

	s.logger.Debug("board resized",
		slog.Int("old_size", oldSize),
		slog.Int("new_size", newSize),
		slog.Int("range_max", rng.Max),
	)
	return result
}

// SeedNegatives replaces a random ~35% (at least one) of the unopened, expanded,
// positive cells with fresh negative numbers in [-Max, -1]. It returns the
// indices that changed.
func (s *Service) SeedNegatives(board *model.Board, rng model.NumberRange) []int {
	var candidates []int
	for i, c := range board.Cells {
		if !c.Opened && c.IsExpanded && c.Number > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	count := int(math.Round(float64(len(candidates)) * negativeSeedRatio))
	if count < 1 {
		count = 1
	}

	// Partial Fisher-Yates: the first count entries become the selection
	for i := 0; i < count; i++ {
		j := i + s.random.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	chosen := candidates[:count]

	used := board.UsedNumbers()
	for _, idx := range chosen {
		delete(used, board.Cells[idx].Number)
		n := s.uniqueNegative(rng.Max, used)
		used[n] = struct{}{}
		board.Cells[idx].Number = n
	}
	return chosen
}

func (s *Service) uniqueNegative(max int, used map[int]struct{}) int {
	for attempt := 0; attempt < maxUniqueAttempts; attempt++ {
		v := -1 - s.random.Intn(max)
		if _, taken := used[v]; !taken {
			return v
		}
	}
	for v := -1; v >= -max; v-- {
		if _, taken := used[v]; !taken {
			return v
		}
	}
	v := -(max + len(used) + 1)
	for {
		if _, taken := used[v]; !taken {
			return v
		}
		v--
	}
}
