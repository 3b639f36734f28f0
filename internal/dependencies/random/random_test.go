package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRandomIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(75), b.Intn(75))
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.Equal(t, uint64(42), a.Seed())
}

func TestSeededRandomIntnBounds(t *testing.T) {
	r := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := r.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-3))
}

func TestFloat64Range(t *testing.T) {
	for _, r := range []Random{New(), NewSeeded(1)} {
		for i := 0; i < 200; i++ {
			f := r.Float64()
			assert.GreaterOrEqual(t, f, 0.0)
			assert.Less(t, f, 1.0)
		}
	}
}

func TestStringUsesAlphabet(t *testing.T) {
	s := NewSeeded(3).String(12, "AB")
	assert.Len(t, s, 12)
	for _, c := range s {
		assert.Contains(t, "AB", string(c))
	}
	assert.Empty(t, New().String(0, "AB"))
	assert.Empty(t, New().String(5, ""))
}
