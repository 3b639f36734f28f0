package model

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Cell is a single numbered square of the bingo board
type Cell struct {
	Number          int  `json:"number"`
	Opened          bool `json:"opened"`
	InCompletedLine bool `json:"in_completed_line"`
	IsExpanded      bool `json:"is_expanded"` // outside the original footprint; fixed at creation
}

// Board is a square grid of cells stored row-major
type Board struct {
	Size        int    // Grid dimension (e.g., 5 for 5x5)
	InitialSize int    // Size the run started with; defines the original footprint
	Cells       []Cell // len(Cells) == Size*Size
}

// NewBoard creates a board of the given size with zero-valued cells
func NewBoard(size, initialSize int) *Board {
	return &Board{
		Size:        size,
		InitialSize: initialSize,
		Cells:       make([]Cell, size*size),
	}
}

// Index returns the flat index for a position
func (b *Board) Index(pos Position) int {
	return pos.Row*b.Size + pos.Col
}

// PositionOf returns the position of a flat index
func (b *Board) PositionOf(index int) Position {
	return Position{Row: index / b.Size, Col: index % b.Size}
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Size && pos.Col >= 0 && pos.Col < b.Size
}

// Get returns the cell at the given position
func (b *Board) Get(pos Position) Cell {
	if !b.IsValidPosition(pos) {
		return Cell{}
	}
	return b.Cells[b.Index(pos)]
}

// IsOutsideFootprint reports whether a position lies outside the original board
func (b *Board) IsOutsideFootprint(pos Position) bool {
	return pos.Row >= b.InitialSize || pos.Col >= b.InitialSize
}

// AllOpened returns true if every cell is opened
func (b *Board) AllOpened() bool {
	for _, c := range b.Cells {
		if !c.Opened {
			return false
		}
	}
	return true
}

// OpenedCount returns the number of opened cells
func (b *Board) OpenedCount() int {
	count := 0
	for _, c := range b.Cells {
		if c.Opened {
			count++
		}
	}
	return count
}

// UsedNumbers returns the set of numbers currently on the board
func (b *Board) UsedNumbers() map[int]struct{} {
	used := make(map[int]struct{}, len(b.Cells))
	for _, c := range b.Cells {
		used[c.Number] = struct{}{}
	}
	return used
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{
		Size:        b.Size,
		InitialSize: b.InitialSize,
		Cells:       cells,
	}
}

// NumberRange is the universe numbers are drawn from.
// Max only grows; once Negative is set Min tracks -Max.
type NumberRange struct {
	Min      int  `json:"min"`
	Max      int  `json:"max"`
	Negative bool `json:"negative"`
}

// Expand grows the ceiling by step, keeping a negative floor mirrored
func (r *NumberRange) Expand(step int) {
	r.Max += step
	if r.Negative {
		r.Min = -r.Max
	}
}

// UnlockNegative mirrors the floor to -Max. It returns false if already unlocked.
func (r *NumberRange) UnlockNegative() bool {
	if r.Negative {
		return false
	}
	r.Negative = true
	r.Min = -r.Max
	return true
}

// Line is an ordered set of flat cell indices (row, column or diagonal)
type Line []int
