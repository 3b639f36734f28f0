package mocks

import (
	"github.com/mcoot/roguebingo/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int
	intnCalls   int

	// FloatResults is a queue of results to return from Float64
	FloatResults []float64
	floatIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	// SeedResults is a queue of results to return from Seed
	SeedResults []uint64
	seedIndex   int
}

// Ensure MockRandom implements Random and Seeder
var (
	_ random.Random = (*MockRandom)(nil)
	_ random.Seeder = (*MockRandom)(nil)
)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining.
// Queued values outside [0, n) are clamped so callers never index out of range.
func (r *MockRandom) Intn(n int) int {
	r.intnCalls++
	if r.intnIndex >= len(r.IntnResults) || n <= 0 {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if result >= n {
		return n - 1
	}
	if result < 0 {
		return 0
	}
	return result
}

// Float64 returns the next queued result, or 0.99 if none remaining.
// The default keeps probability checks failing unless a test asks otherwise.
func (r *MockRandom) Float64() float64 {
	if r.floatIndex >= len(r.FloatResults) {
		return 0.99
	}
	result := r.FloatResults[r.floatIndex]
	r.floatIndex++
	return result
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// Seed returns the next queued seed, or 0 if none remaining
func (r *MockRandom) Seed() uint64 {
	if r.seedIndex >= len(r.SeedResults) {
		return 0
	}
	result := r.SeedResults[r.seedIndex]
	r.seedIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueFloat adds values to the Float64 result queue
func (r *MockRandom) QueueFloat(values ...float64) {
	r.FloatResults = append(r.FloatResults, values...)
}

// QueueSeed adds values to the Seed result queue
func (r *MockRandom) QueueSeed(values ...uint64) {
	r.SeedResults = append(r.SeedResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// IntnCalls returns how many times Intn was called, queued result or not
func (r *MockRandom) IntnCalls() int {
	return r.intnCalls
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.intnCalls = 0
	r.FloatResults = nil
	r.floatIndex = 0
	r.StringResults = nil
	r.stringIndex = 0
	r.SeedResults = nil
	r.seedIndex = 0
}
