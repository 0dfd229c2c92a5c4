// Package testutil holds fixtures shared by package tests.
package testutil

import "math"

// JavaRandom reproduces the 48-bit linear congruential generator of
// java.util.Random so fixtures recorded with it can be regenerated.
type JavaRandom struct {
	seed int64
}

const (
	lcgMultiplier = 0x5DEECE66D
	lcgAddend     = 0xB
	lcgMask       = (1 << 48) - 1
)

// NewJavaRandom seeds the generator.
func NewJavaRandom(seed int64) *JavaRandom {
	return &JavaRandom{seed: (seed ^ lcgMultiplier) & lcgMask}
}

func (r *JavaRandom) next(bits uint) int64 {
	r.seed = (r.seed*lcgMultiplier + lcgAddend) & lcgMask
	return int64(int32(r.seed >> (48 - bits)))
}

// Float64 returns a value in [0, 1).
func (r *JavaRandom) Float64() float64 {
	return float64(r.next(26)<<27+r.next(27)) * (1.0 / (1 << 53))
}

// Float64s returns n values in [lo, hi).
func (r *JavaRandom) Float64s(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := r.Float64()*(hi-lo) + lo
		if v >= hi {
			v = math.Nextafter(hi, lo)
		}
		out[i] = v
	}
	return out
}
