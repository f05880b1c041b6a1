package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector(t *testing.T) {
	{ // Construction aliases the backing slice
		v := NewVector(3, []float64{1, 2, 3})
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, 2., v.AtVec(1))
		v.DataP[1] = 5
		assert.Equal(t, 5., v.V.AtVec(1))
		assert.Panics(t, func() { NewVector(2, []float64{1, 2, 3}) })
	}
	{ // Chainable mutators change the receiver in place
		v := NewVector(3).Set(1).Scale(2).AddScalar(1)
		assert.Equal(t, []float64{3, 3, 3}, v.DataP)
		v.Add(NewVector(3, []float64{1, 2, 3}))
		assert.Equal(t, []float64{4, 5, 6}, v.DataP)
		v.ElMul(NewVector(3, []float64{2, 2, 2})).Subtract(NewVector(3, []float64{8, 10, 12}))
		assert.Equal(t, []float64{0, 0, 0}, v.DataP)
		w := NewVector(2, []float64{-4, 9}).Abs().POW(2)
		assert.Equal(t, []float64{16, 81}, w.DataP)
	}
	{ // Reductions
		v := NewVector(4, []float64{3, -1, 4, 2})
		assert.Equal(t, -1., v.Min())
		assert.Equal(t, 4., v.Max())
		assert.Equal(t, 8., v.Sum())
		assert.Equal(t, 27., v.Dot(NewVector(4, []float64{1, 2, 3, 7})))
	}
	{ // Subset, Concat and ToIndex do not change the receiver
		v := NewVector(4, []float64{10, 11, 12, 13})
		s := v.Subset(Index{3, 0})
		assert.Equal(t, []float64{13, 10}, s.DataP)
		c := v.Concat(NewVector(2, []float64{14, 15}))
		assert.Equal(t, 6, c.Len())
		assert.Equal(t, 15., c.AtVec(5))
		assert.Equal(t, []float64{10, 11, 12, 13}, v.DataP)
		assert.Equal(t, Index{10, 11, 12, 13}, v.ToIndex())
	}
	{ // Find positions, with and without absolute value
		v := NewVector(4, []float64{-2, 0.5, 2, -0.5})
		assert.Equal(t, Index{0, 3}, v.Find(Less, 0, false))
		assert.Equal(t, Index{1, 3}, v.Find(Less, 1, true))
		assert.Equal(t, Index{2}, v.Find(GreaterOrEqual, 2, false))
	}
	{ // Linspace endpoints and spacing
		v := NewVector(3).Linspace(-1, 1)
		assert.Equal(t, []float64{-1, 0, 1}, v.DataP)
		one := NewVector(1).Linspace(-1, 1)
		assert.Equal(t, -1., one.AtVec(0))
	}
	{ // Column and row matrix conversions copy the data
		v := NewVector(3, []float64{1, 2, 3})
		col := v.ToMatrix()
		nr, nc := col.Dims()
		assert.Equal(t, [2]int{3, 1}, [2]int{nr, nc})
		row := v.Transpose()
		nr, nc = row.Dims()
		assert.Equal(t, [2]int{1, 3}, [2]int{nr, nc})
		col.Set(0, 0, 99)
		assert.Equal(t, 1., v.AtVec(0))
	}
	{ // Outer product shape and values
		A := NewVector(3, []float64{1, 2, 3}).Mul(NewVector(2, []float64{2, 1}))
		nr, nc := A.Dims()
		assert.Equal(t, [2]int{3, 2}, [2]int{nr, nc})
		assert.Equal(t, 6., A.At(2, 0))
		assert.Equal(t, 3., A.At(2, 1))
		B := NewVector(3, []float64{1, 2, 3}).Outer(NewVector(2, []float64{2, 1}))
		assert.Equal(t, A.DataP, B.DataP)
	}
}
