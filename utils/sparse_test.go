package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	{ // Test DOK assignment using column-major node ids
		A := NewDOK(3, 4)
		A.Assign(Index{0, 4, 8}, []float64{1, 2, 3})
		assert.Equal(t, 1., A.At(0, 0))
		assert.Equal(t, 2., A.At(1, 1))
		assert.Equal(t, 3., A.At(2, 2))
		// Range phrases address storage directly
		A.Equate(5., ":", 1)
		assert.Equal(t, 5., A.At(0, 1))
		assert.Equal(t, 5., A.At(1, 1))
		assert.Equal(t, 5., A.At(2, 1))
		err := A.IndexedAssign(Index{0, 1}, []float64{1})
		assert.NotNil(t, err)
	}
	{ // Test conversion to CSR for fast multiplication
		A := NewDOK(3, 3)
		A.Assign(Index{0, 4, 8}, []float64{2, 2, 2})
		Ac := A.ToCSR()
		assert.Equal(t, 2., Ac.At(1, 1))
		nr, nc := Ac.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 3, nc)
	}
	{ // A new CSR supports direct insertion
		B := NewCSR(2, 2)
		B.M.Set(0, 0, 1.5)
		B.M.Set(1, 0, -1)
		assert.Equal(t, 1.5, B.At(0, 0))
		assert.Equal(t, -1., B.At(1, 0))
	}
}
