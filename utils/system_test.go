package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNan(t *testing.T) {
	nan := math.NaN()
	{ // Scalar and slice forms
		assert.False(t, IsNan(1.5))
		assert.True(t, IsNan(nan))
		assert.False(t, IsNan([]float64{0, 1, 2}))
		assert.True(t, IsNan([]float64{0, nan, 2}))
	}
	{ // Wrapped storage forms walk the backing data
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		assert.False(t, IsNan(M))
		assert.False(t, IsNan([]Matrix{M, M}))
		N := NewMatrix(2, 2, []float64{1, nan, 3, 4})
		assert.True(t, IsNan(N))
		assert.True(t, IsNan([]Matrix{M, N}))
		assert.True(t, IsNan(NewVector(2, []float64{nan, 0})))
		assert.Panics(t, func() { IsNanPanic(N) })
		assert.NotPanics(t, func() { IsNanPanic(M) })
	}
}
