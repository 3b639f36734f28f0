package board

import (
	"github.com/mcoot/roguebingo/internal/dependencies/random"
)

// SampleNonZero draws uniformly from [lo, hi] and never returns zero.
// A zero sample is replaced by -1 or +1 (clamped back into the range).
func SampleNonZero(r random.Random, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	v := lo + r.Intn(hi-lo+1)
	if v != 0 {
		return v
	}

	if r.Intn(2) == 0 {
		v = -1
	} else {
		v = 1
	}
	v = clamp(v, lo, hi)
	if v == 0 {
		v = 1
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
