package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/roguebingo/internal/dependencies/mocks"
	"github.com/mcoot/roguebingo/internal/dependencies/random"
	"github.com/mcoot/roguebingo/internal/model"
	"github.com/mcoot/roguebingo/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	settings Settings
	service  *Service
	rng      model.NumberRange
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.settings = Settings{MinSize: 3, MaxSize: 12, RangeStep: 15}
	s.service = New(random.NewSeeded(1), s.settings, testutil.NopLogger())
	s.rng = model.NumberRange{Min: 1, Max: 75}
}

func (s *ServiceSuite) withMock() *mocks.MockRandom {
	m := mocks.NewMockRandom()
	s.service = New(m, s.settings, testutil.NopLogger())
	return m
}

func (s *ServiceSuite) assertUniqueNonZero(b *model.Board) {
	seen := make(map[int]bool, len(b.Cells))
	for i, c := range b.Cells {
		s.NotZero(c.Number, "cell %d is zero", i)
		s.False(seen[c.Number], "duplicate number %d", c.Number)
		seen[c.Number] = true
	}
	s.Len(b.Cells, b.Size*b.Size)
}

// SampleNonZero tests

func (s *ServiceSuite) TestSampleNonZeroReplacesZero() {
	m := mocks.NewMockRandom()
	m.QueueIntn(5, 0) // lo + 5 == 0, then pick -1
	s.Equal(-1, SampleNonZero(m, -5, 5))

	m.Reset()
	m.QueueIntn(5, 1)
	s.Equal(1, SampleNonZero(m, -5, 5))
}

func (s *ServiceSuite) TestSampleNonZeroClampsReplacement() {
	m := mocks.NewMockRandom()
	m.QueueIntn(0, 0) // [0, 4]: zero, replacement -1 clamps to 0, guarded to 1
	s.Equal(1, SampleNonZero(m, 0, 4))
}

func (s *ServiceSuite) TestSampleNonZeroNeverZero() {
	r := random.NewSeeded(99)
	for i := 0; i < 5000; i++ {
		v := SampleNonZero(r, -3, 3)
		s.NotZero(v)
		s.GreaterOrEqual(v, -3)
		s.LessOrEqual(v, 3)
	}
}

// CreateUniqueNumber tests

func (s *ServiceSuite) TestCreateUniqueNumberRejectsUsed() {
	m := s.withMock()
	m.QueueIntn(9, 9, 10) // 10, 10, 11
	used := map[int]struct{}{10: {}}

	s.Equal(11, s.service.CreateUniqueNumber(s.rng, used, false))
}

func (s *ServiceSuite) TestCreateUniqueNumberFallsBackToLinearScan() {
	s.withMock() // always returns lo
	used := map[int]struct{}{1: {}, 2: {}, 3: {}}

	s.Equal(4, s.service.CreateUniqueNumber(s.rng, used, false))
}

func (s *ServiceSuite) TestCreateUniqueNumberExhaustedPool() {
	s.withMock()
	rng := model.NumberRange{Min: 1, Max: 3}
	used := map[int]struct{}{1: {}, 2: {}, 3: {}}

	s.Equal(7, s.service.CreateUniqueNumber(rng, used, false)) // 3 + 3 + 1
}

func (s *ServiceSuite) TestCreateUniqueNumberPositiveUnlessAllowed() {
	rng := model.NumberRange{Min: -75, Max: 75, Negative: true}
	used := map[int]struct{}{}
	for i := 0; i < 60; i++ {
		n := s.service.CreateUniqueNumber(rng, used, false)
		s.Positive(n)
		used[n] = struct{}{}
	}
}

func (s *ServiceSuite) TestCreateUniqueNumberAllowsNegativeWhenUnlocked() {
	m := s.withMock()
	m.QueueIntn(0) // lo
	rng := model.NumberRange{Min: -75, Max: 75, Negative: true}

	s.Equal(-75, s.service.CreateUniqueNumber(rng, map[int]struct{}{}, true))
}

func (s *ServiceSuite) TestCreateUniqueNumberIgnoresAllowWhenLocked() {
	m := s.withMock()
	m.QueueIntn(0)

	s.Equal(1, s.service.CreateUniqueNumber(s.rng, map[int]struct{}{}, true))
}

// BuildFreshBoard tests

func (s *ServiceSuite) TestBuildFreshBoard() {
	b := s.service.BuildFreshBoard(5, 5, s.rng)

	s.Equal(5, b.Size)
	s.assertUniqueNonZero(b)
	for _, c := range b.Cells {
		s.False(c.Opened)
		s.False(c.IsExpanded)
		s.GreaterOrEqual(c.Number, 1)
		s.LessOrEqual(c.Number, 75)
	}
}

func (s *ServiceSuite) TestBuildFreshBoardMarksExpandedByPosition() {
	b := s.service.BuildFreshBoard(4, 3, s.rng)

	for i, c := range b.Cells {
		pos := b.PositionOf(i)
		s.Equal(pos.Row >= 3 || pos.Col >= 3, c.IsExpanded, "cell %d", i)
	}
}

// Resize tests

func (s *ServiceSuite) TestResizeGrowPreservesFootprint() {
	b := s.service.BuildFreshBoard(5, 5, s.rng)
	b.Cells[0].Opened = true
	b.Cells[0].InCompletedLine = true
	b.Cells[24].Opened = true
	before := b.Clone()

	result := s.service.Resize(b, &s.rng, 1)

	s.True(result.Changed)
	s.Equal(6, b.Size)
	s.Equal(90, s.rng.Max)
	s.Len(result.AddedCells, 11)
	s.assertUniqueNonZero(b)

	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			old := before.Cells[row*5+col]
			cur := b.Cells[row*6+col]
			s.Equal(old.Number, cur.Number)
			s.Equal(old.Opened, cur.Opened)
			s.False(cur.InCompletedLine)
			s.False(cur.IsExpanded)
		}
	}
	for _, idx := range result.AddedCells {
		s.True(b.Cells[idx].IsExpanded)
		s.False(b.Cells[idx].Opened)
	}
}

func (s *ServiceSuite) TestResizeShrinkKeepsRetainedCells() {
	b := s.service.BuildFreshBoard(5, 5, s.rng)
	b.Cells[6].Opened = true
	before := b.Clone()

	result := s.service.Resize(b, &s.rng, -1)

	s.True(result.Changed)
	s.Equal(4, b.Size)
	s.Empty(result.AddedCells)
	s.Len(b.Cells, 16)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			s.Equal(before.Cells[row*5+col].Number, b.Cells[row*4+col].Number)
		}
	}
	s.True(b.Cells[5].Opened) // (1,1)
}

func (s *ServiceSuite) TestResizeAtBoundStillExpandsRange() {
	b := s.service.BuildFreshBoard(3, 3, s.rng)
	before := b.Clone()

	result := s.service.Resize(b, &s.rng, -1)

	s.False(result.Changed)
	s.Equal(3, b.Size)
	s.Equal(90, s.rng.Max)
	s.Equal(before.Cells, b.Cells)
}

func (s *ServiceSuite) TestResizeExpandsNegativeFloor() {
	b := s.service.BuildFreshBoard(5, 5, s.rng)
	s.rng.UnlockNegative()

	s.service.Resize(b, &s.rng, 1)

	s.Equal(-90, s.rng.Min)
	s.Equal(90, s.rng.Max)
}

func (s *ServiceSuite) TestRepeatedResizeKeepsUniqueness() {
	b := s.service.BuildFreshBoard(5, 5, s.rng)
	s.rng.UnlockNegative()
	for _, d := range []int{1, 1, -1, 1, 1, -1, -1, -1, -1, 1, 1, 1, 1, 1, 1, 1, 1} {
		s.service.Resize(b, &s.rng, d)
		s.assertUniqueNonZero(b)
		s.GreaterOrEqual(b.Size, 3)
		s.LessOrEqual(b.Size, 12)
	}
}

// SeedNegatives tests

func (s *ServiceSuite) TestSeedNegativesOnlyTouchesEligibleCells() {
	b := s.service.BuildFreshBoard(5, 5, s.rng)
	s.service.Resize(b, &s.rng, 1) // 11 expanded cells
	s.rng.UnlockNegative()
	expandedIdx := -1
	for i, c := range b.Cells {
		if c.IsExpanded {
			expandedIdx = i
			break
		}
	}
	b.Cells[expandedIdx].Opened = true
	before := b.Clone()

	changed := s.service.SeedNegatives(b, s.rng)

	s.Len(changed, 4) // round(10 * 0.35)
	s.assertUniqueNonZero(b)
	for _, idx := range changed {
		s.NotEqual(expandedIdx, idx)
		s.True(b.Cells[idx].IsExpanded)
		s.Negative(b.Cells[idx].Number)
		s.GreaterOrEqual(b.Cells[idx].Number, -s.rng.Max)
	}
	for i, c := range b.Cells {
		if !c.IsExpanded {
			s.Equal(before.Cells[i].Number, c.Number)
		}
	}
}

func (s *ServiceSuite) TestSeedNegativesAtLeastOne() {
	b := s.service.BuildFreshBoard(4, 3, s.rng) // 7 expanded cells
	for i := range b.Cells {
		if b.Cells[i].IsExpanded {
			b.Cells[i].Opened = true
		}
	}
	last := len(b.Cells) - 1
	b.Cells[last].Opened = false
	s.rng.UnlockNegative()

	changed := s.service.SeedNegatives(b, s.rng)

	s.Equal([]int{last}, changed)
	s.Negative(b.Cells[last].Number)
}

func (s *ServiceSuite) TestSeedNegativesNoEligibleCells() {
	b := s.service.BuildFreshBoard(5, 5, s.rng)
	s.rng.UnlockNegative()

	s.Empty(s.service.SeedNegatives(b, s.rng))
}
