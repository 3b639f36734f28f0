// Package lines derives the rows, columns and diagonals of a square board and
// tracks which of them are complete.
package lines

import (
	"github.com/mcoot/roguebingo/internal/model"
)

// For returns the lines of a size×size board: every row, every column, then the
// main and anti diagonals. Indices are only stable within one geometry.
func For(size int) []model.Line {
	lines := make([]model.Line, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make(model.Line, size)
		for col := 0; col < size; col++ {
			line[col] = row*size + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make(model.Line, size)
		for row := 0; row < size; row++ {
			line[row] = row*size + col
		}
		lines = append(lines, line)
	}

	diag := make(model.Line, size)
	anti := make(model.Line, size)
	for i := 0; i < size; i++ {
		diag[i] = i*size + i
		anti[i] = i*size + (size - 1 - i)
	}
	return append(lines, diag, anti)
}

// IsComplete reports whether every cell of the line is opened
func IsComplete(board *model.Board, line model.Line) bool {
	for _, idx := range line {
		if !board.Cells[idx].Opened {
			return false
		}
	}
	return true
}

// FindNewlyCompleted returns the indexes of complete lines not yet in completed.
// The caller records them before the next check.
func FindNewlyCompleted(board *model.Board, lines []model.Line, completed map[int]struct{}) []int {
	var found []int
	for i, line := range lines {
		if _, done := completed[i]; done {
			continue
		}
		if IsComplete(board, line) {
			found = append(found, i)
		}
	}
	return found
}

// Tracker holds the lines of the current geometry and the completed set
type Tracker struct {
	lines     []model.Line
	completed map[int]struct{}
}

// NewTracker creates a tracker for a board of the given size
func NewTracker(size int) *Tracker {
	return &Tracker{
		lines:     For(size),
		completed: make(map[int]struct{}),
	}
}

// Lines returns the lines of the current geometry
func (t *Tracker) Lines() []model.Line {
	return t.lines
}

// IsCompleted reports whether a line index has been recorded
func (t *Tracker) IsCompleted(idx int) bool {
	_, ok := t.completed[idx]
	return ok
}

// CompletedCount returns how many lines are recorded as complete
func (t *Tracker) CompletedCount() int {
	return len(t.completed)
}

// Check finds newly completed lines, records them and refreshes cell marks
func (t *Tracker) Check(board *model.Board) []int {
	found := FindNewlyCompleted(board, t.lines, t.completed)
	if len(found) == 0 {
		return nil
	}
	for _, idx := range found {
		t.completed[idx] = struct{}{}
	}
	t.MarkCells(board)
	return found
}

// Rebuild regenerates lines for the board's current size and recomputes the
// completed set from scratch. Lines complete after a resize are recorded
// silently; they are not reported as newly completed.
func (t *Tracker) Rebuild(board *model.Board) {
	t.lines = For(board.Size)
	t.completed = make(map[int]struct{})
	for i, line := range t.lines {
		if IsComplete(board, line) {
			t.completed[i] = struct{}{}
		}
	}
	t.MarkCells(board)
}

// MarkCells sets InCompletedLine on exactly the cells of completed lines
func (t *Tracker) MarkCells(board *model.Board) {
	for i := range board.Cells {
		board.Cells[i].InCompletedLine = false
	}
	for idx := range t.completed {
		for _, cell := range t.lines[idx] {
			board.Cells[cell].InCompletedLine = true
		}
	}
}
