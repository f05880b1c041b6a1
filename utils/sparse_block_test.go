package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockViewRebind(t *testing.T) {
	tol := 0.0000001
	// Preallocate a buffer for a 2x2 block
	data := []float64{1.1, 1.2, 2.1, 2.2}

	// Create a Matrix that uses this buffer
	m := NewMatrix(2, 2)
	_ = m.ResetView(data)
	if testing.Verbose() {
		m.Print("Matrix m")
	}
	assert.InDeltaSlicef(t, data, m.DataP, tol, "")

	// Modifying the underlying slice is visible through the view
	data[0] = 9.9
	data[3] = 8.8
	assert.InDeltaSlicef(t, data, m.DataP, tol, "")

	// A size mismatch is rejected
	err := m.ResetView(make([]float64, 3))
	assert.NotNil(t, err)
}

func TestSolveLeastSquares(t *testing.T) {
	// Overdetermined 3x2 system with a nonzero residual at the minimum
	H := [][]float64{
		{1, 1},
		{1, 0},
		{0, 1},
	}
	g := []float64{3, 1, 1}
	y := SolveLeastSquares(H, 3, 2, g)
	assert.InDeltaSlicef(t, []float64{4. / 3., 4. / 3.}, y, 0.0000001, "")
}

func TestBlockSparseMul(t *testing.T) {
	/*
		A is a 4x4 block matrix with 2x2 blocks, allocated only at
		(0,0), (0,2), (1,1), (2,0), (3,3). b is a dense block vector.
	*/
	addressesA := [][2]int{
		{0, 0},
		{0, 2},
		{1, 1},
		{2, 0},
		{3, 3},
	}
	A := NewBlockSparse(4, 4, 2, 2, addressesA)
	setBlock := func(bs *BlockSparse, i, j int, vals []float64) {
		copy(bs.GetBlockView(i, j).DataP, vals)
	}
	eye := []float64{1, 0, 0, 1}
	setBlock(A, 0, 0, eye)
	setBlock(A, 0, 2, []float64{2, 2, 2, 2})
	setBlock(A, 1, 1, eye)
	setBlock(A, 2, 0, []float64{3, 3, 3, 3})
	setBlock(A, 3, 3, eye)

	assert.True(t, A.IsAllocated(0, 2))
	assert.False(t, A.IsAllocated(2, 2))

	b := NewBlockVector(4, 2, 2)
	setBlock(b, 0, 0, []float64{1, 1, 1, 1})
	setBlock(b, 1, 0, []float64{2, 2, 2, 2})
	setBlock(b, 2, 0, []float64{3, 3, 3, 3})
	setBlock(b, 3, 0, []float64{4, 4, 4, 4})

	result := A.Mul(b)

	/*
		r[0] = I*b[0] + [2]*b[2] = [1] + [12] = [13]
		r[1] = I*b[1] = [2]
		r[2] = [3]*b[0] = [6]
		r[3] = I*b[3] = [4]
	*/
	expected := map[[2]int][]float64{
		{0, 0}: {13, 13, 13, 13},
		{1, 0}: {2, 2, 2, 2},
		{2, 0}: {6, 6, 6, 6},
		{3, 0}: {4, 4, 4, 4},
	}
	for key, expVals := range expected {
		rblock := result.GetBlockView(key[0], key[1])
		assert.InDeltaSlicef(t, expVals, rblock.DataP, 0.0000001, "block %v", key)
	}
}

func TestGMRESIdentity(t *testing.T) {
	// A = block identity, so the solution equals b
	addressesA := [][2]int{
		{0, 0}, {1, 1}, {2, 2},
	}
	A := NewBlockSparse(3, 3, 2, 2, addressesA)
	for _, addr := range addressesA {
		copy(A.GetBlockView(addr[0], addr[1]).DataP, []float64{1, 0, 0, 1})
	}

	b := NewBlockVector(3, 2, 2)
	for i := 0; i < 3; i++ {
		block := b.GetBlockView(i, 0)
		for j := range block.DataP {
			block.DataP[j] = float64(4*i + j + 1)
		}
	}

	tol := 1e-6
	x := A.GMRES(b, tol, 5)

	resNorm := b.Subtract(A.Mul(x)).FrobNorm()
	assert.True(t, resNorm < tol, "residual norm %v", resNorm)
}

func TestGMRESBlockTridiagonal(t *testing.T) {
	/*
		Block tridiagonal system with 2x2 blocks: diagonal blocks are 4I and
		the off diagonals are -I. The true solution has every block equal to
		a 2x1 vector of ones, b is manufactured as A*xTrue.
	*/
	var (
		N          = 5
		addressesA [][2]int
	)
	for i := 0; i < N; i++ {
		if i > 0 {
			addressesA = append(addressesA, [2]int{i, i - 1})
		}
		addressesA = append(addressesA, [2]int{i, i})
		if i < N-1 {
			addressesA = append(addressesA, [2]int{i, i + 1})
		}
	}
	A := NewBlockSparse(N, N, 2, 2, addressesA)
	for _, addr := range addressesA {
		block := A.GetBlockView(addr[0], addr[1])
		if addr[0] == addr[1] {
			copy(block.DataP, []float64{4, 0, 0, 4})
		} else {
			copy(block.DataP, []float64{-1, 0, 0, -1})
		}
	}

	xTrue := NewBlockVector(N, 2, 1)
	for i := 0; i < N; i++ {
		copy(xTrue.GetBlockView(i, 0).DataP, []float64{1, 1})
	}
	b := A.Mul(xTrue)

	tol := 1e-6
	xApprox := A.GMRES(b, tol, 50)

	var errSum float64
	for i := 0; i < N; i++ {
		var (
			xt = xTrue.GetBlockView(i, 0)
			xa = xApprox.GetBlockView(i, 0)
		)
		for n := range xt.DataP {
			diff := xt.DataP[n] - xa.DataP[n]
			errSum += diff * diff
		}
	}
	avgErr := math.Sqrt(errSum / float64(2*N))
	assert.True(t, avgErr < tol, "average error %v", avgErr)
}
