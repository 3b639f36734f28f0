package factory

import (
	"time"

	"github.com/mcoot/roguebingo/internal/config"
	"github.com/mcoot/roguebingo/internal/dependencies/mocks"
	"github.com/mcoot/roguebingo/internal/storage/memory"
	"github.com/mcoot/roguebingo/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithRules(config.DefaultRules())
}

// NewTestAppWithRules is NewTestApp with a custom rule set
func NewTestAppWithRules(rules config.Rules) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, rules, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
