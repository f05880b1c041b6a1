package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRanger(t *testing.T) {
	checkDim := func(dimI interface{}, max, e1, e2 int) {
		i1, i2 := ParseDim(dimI, max)
		assert.Equal(t, e1, i1)
		assert.Equal(t, e2, i2)
	}
	{ // Phrase parsing resolves against the dimension size
		checkDim(":", 10, 0, 10)
		checkDim("end", 10, 9, 10)
		checkDim(":5", 10, 0, 5)
		checkDim("5:", 10, 5, 10)
		checkDim("2:7", 10, 2, 7)
		checkDim("5:5", 10, 5, 6)
		checkDim("2", 10, 2, 3)
		checkDim(4, 10, 4, 5)
	}
	{ // R2 produces flat row-major indices
		r := NewR2(3, 4)
		assert.Equal(t, Index{0}, r.Range(0, 0))
		assert.Equal(t, Index{0, 1, 2, 3}, r.Range(0, ":"))
		assert.Equal(t, Index{4, 5, 6, 7}, r.Range(1, ":"))
		assert.Equal(t, Index{0, 4, 8}, r.Range(":", 0))
		assert.Equal(t, Index{1, 5, 9}, r.Range(":", 1))
		assert.Equal(t, Index{11}, r.Range("end", "end"))
		// Rectangular block, second index outermost
		assert.Equal(t, Index{1, 5, 2, 6}, r.Range(":2", "1:3"))
	}
	{ // R1 covers the flattened storage directly
		r := NewR1(6)
		assert.Equal(t, Index{0, 1, 2, 3, 4, 5}, r.Range(":"))
		assert.Equal(t, Index{5}, r.Range("end"))
		assert.Equal(t, Index{2, 3}, r.Range("2:4"))
	}
}
