package lattice

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func TestGenerateUnitLength(t *testing.T) {
	for _, n := range []int{2, 4, 7, 96, 500} {
		dirs, err := Generate(n)
		require.NoError(t, err)
		require.Len(t, dirs, n)
		for k, d := range dirs {
			assert.InDelta(t, 1.0, d.Length(), 1e-9, "n=%d k=%d", n, k)
		}
	}
}

func TestGeneratePoles(t *testing.T) {
	dirs, err := Generate(DefaultSize)
	require.NoError(t, err)

	first, last := dirs[0], dirs[len(dirs)-1]
	assert.InDelta(t, -1.0, first.Z, tol)
	assert.InDelta(t, 0.0, first.X, tol)
	assert.InDelta(t, 0.0, first.Y, tol)
	assert.InDelta(t, 1.0, last.Z, tol)
}

func TestGenerateFormula(t *testing.T) {
	const n = 10
	dirs, err := Generate(n)
	require.NoError(t, err)

	golden := (1 + math.Sqrt(5)) / 2
	for k := range n {
		z := -1 + 2*float64(k)/float64(n-1)
		r := math.Sqrt(1 - z*z)
		theta := 2 * math.Pi * (1 - 1/golden) * float64(k)
		assert.InDelta(t, r*math.Cos(theta), dirs[k].X, tol)
		assert.InDelta(t, r*math.Sin(theta), dirs[k].Y, tol)
		assert.InDelta(t, z, dirs[k].Z, tol)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(96)
	require.NoError(t, err)
	b, err := Generate(96)
	require.NoError(t, err)
	// Exact equality, not a tolerance.
	assert.Equal(t, a, b)
}

func TestGenerateSpread(t *testing.T) {
	dirs, err := Generate(DefaultSize)
	require.NoError(t, err)

	var sum [3]float64
	for _, d := range dirs {
		sum[0] += d.X
		sum[1] += d.Y
		sum[2] += d.Z
	}
	// An even spread has its centroid near the origin.
	for i, s := range sum {
		assert.InDelta(t, 0.0, s/float64(len(dirs)), 0.05, "axis %d", i)
	}
}

func TestGenerateInvalid(t *testing.T) {
	for _, n := range []int{-3, 0, 1} {
		_, err := Generate(n)
		require.Error(t, err, "n=%d", n)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}
}

func TestCacheSharesEntries(t *testing.T) {
	c := NewCache()

	var wg sync.WaitGroup
	results := make([][]float64, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dirs, err := c.Get(32)
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[i] = []float64{dirs[5].X, dirs[5].Y, dirs[5].Z}
		}()
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
	assert.Equal(t, 1, c.Len())

	a, err := c.Get(32)
	require.NoError(t, err)
	b, err := c.Get(32)
	require.NoError(t, err)
	assert.Same(t, &a[0], &b[0])
}

func TestCacheRejectsInvalid(t *testing.T) {
	c := NewCache()
	_, err := c.Get(0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, c.Len())
}
