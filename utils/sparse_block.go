package utils

import (
	"fmt"
	"math"
	"sort"
)

// BlockSparse is a sparse block matrix. Only blocks listed in addresses are
// allocated, all other blocks are implicitly zero. Storage for the allocated
// blocks is contiguous, and GetBlockView exposes each block as a Matrix over
// that storage so assembly can write directly into place.
type BlockSparse struct {
	NrBlocks, NcBlocks   int // Global dimensions in block counts
	blockRows, blockCols int // Each block is blockRows x blockCols
	data                 []float64
	addresses            map[[2]int]int // Block coordinate [i,j] -> offset within data
}

func NewBlockSparse(nrBlocks, ncBlocks, blockRows, blockCols int, addresses [][2]int) *BlockSparse {
	var (
		blockSize = blockRows * blockCols
		addrMap   = make(map[[2]int]int, len(addresses))
	)
	for i, addr := range addresses {
		addrMap[addr] = i * blockSize
	}
	return &BlockSparse{
		NrBlocks:  nrBlocks,
		NcBlocks:  ncBlocks,
		blockRows: blockRows,
		blockCols: blockCols,
		data:      make([]float64, len(addresses)*blockSize),
		addresses: addrMap,
	}
}

// NewBlockVector allocates a dense block vector, every block row allocated
func NewBlockVector(nrBlocks, blockRows, blockCols int) *BlockSparse {
	return NewBlockSparse(nrBlocks, 1, blockRows, blockCols, generateDenseAddresses(nrBlocks))
}

func (bs *BlockSparse) BlockDims() (nr, nc int) {
	return bs.blockRows, bs.blockCols
}

func (bs *BlockSparse) IsAllocated(i, j int) bool {
	_, ok := bs.addresses[[2]int{i, j}]
	return ok
}

// GetBlockView returns a Matrix backed by the block's storage at (i, j).
// Writes through the view change the block in place. Panics if the block is
// not in the sparsity pattern.
func (bs *BlockSparse) GetBlockView(i, j int) Matrix {
	offset, ok := bs.addresses[[2]int{i, j}]
	if !ok {
		panic(fmt.Sprintf("block (%d,%d) is outside the sparsity pattern", i, j))
	}
	m := NewMatrix(bs.blockRows, bs.blockCols)
	if err := m.ResetView(bs.data[offset : offset+bs.blockRows*bs.blockCols]); err != nil {
		panic(err)
	}
	return m
}

// Mul forms the block product with other, visiting only allocated blocks on
// both sides. The sparsity pattern of the result is the union of contributing
// (i,j) pairs, stored in block row-major order.
func (bs *BlockSparse) Mul(other *BlockSparse) *BlockSparse {
	if bs.NcBlocks != other.NrBlocks {
		panic("Mul: block column count does not match block row count")
	}
	if bs.blockCols != other.blockRows {
		panic("Mul: inner block shapes do not align")
	}
	// First pass fixes the result pattern so blocks can accumulate in place
	pattern := make(map[[2]int]bool)
	for key1 := range bs.addresses {
		for key2 := range other.addresses {
			if key1[1] == key2[0] {
				pattern[[2]int{key1[0], key2[1]}] = true
			}
		}
	}
	addrs := make([][2]int, 0, len(pattern))
	for key := range pattern {
		addrs = append(addrs, key)
	}
	sort.Slice(addrs, func(l, r int) bool {
		if addrs[l][0] != addrs[r][0] {
			return addrs[l][0] < addrs[r][0]
		}
		return addrs[l][1] < addrs[r][1]
	})
	R := NewBlockSparse(bs.NrBlocks, other.NcBlocks, bs.blockRows, other.blockCols, addrs)
	for key1 := range bs.addresses {
		i, k := key1[0], key1[1]
		for key2 := range other.addresses {
			if key2[0] != k {
				continue
			}
			j := key2[1]
			prod := bs.GetBlockView(i, k).Mul(other.GetBlockView(k, j))
			rb := R.GetBlockView(i, j)
			for n, v := range prod.DataP {
				rb.DataP[n] += v
			}
		}
	}
	return R
}

// FrobNorm is the Frobenius norm over all allocated blocks
func (bs *BlockSparse) FrobNorm() (norm float64) {
	var sum float64
	for _, v := range bs.data {
		sum += v * v
	}
	norm = math.Sqrt(sum)
	return
}

// InnerProduct computes the Frobenius inner product between two dense block
// vectors (NcBlocks == 1)
func (bs *BlockSparse) InnerProduct(y *BlockSparse) (sum float64) {
	if bs.NrBlocks != y.NrBlocks {
		panic("InnerProduct: block row counts differ")
	}
	for i := 0; i < bs.NrBlocks; i++ {
		xb, yb := bs.GetBlockView(i, 0), y.GetBlockView(i, 0)
		for n, v := range xb.DataP {
			sum += v * yb.DataP[n]
		}
	}
	return
}

// Scale multiplies every allocated element by alpha, in place
func (bs *BlockSparse) Scale(alpha float64) {
	for i := range bs.data {
		bs.data[i] *= alpha
	}
}

// axpy returns the new dense block vector bs + alpha*y
func (bs *BlockSparse) axpy(alpha float64, y *BlockSparse) *BlockSparse {
	if bs.NrBlocks != y.NrBlocks || bs.blockRows != y.blockRows || bs.blockCols != y.blockCols {
		panic("axpy: block vector shapes differ")
	}
	res := NewBlockVector(bs.NrBlocks, bs.blockRows, bs.blockCols)
	for i := 0; i < bs.NrBlocks; i++ {
		xb, yb := bs.GetBlockView(i, 0), y.GetBlockView(i, 0)
		rb := res.GetBlockView(i, 0)
		for n := range rb.DataP {
			rb.DataP[n] = xb.DataP[n] + alpha*yb.DataP[n]
		}
	}
	return res
}

// Add returns a new dense block vector equal to bs + y
func (bs *BlockSparse) Add(y *BlockSparse) *BlockSparse {
	return bs.axpy(1, y)
}

// Subtract returns a new dense block vector equal to bs - y
func (bs *BlockSparse) Subtract(y *BlockSparse) *BlockSparse {
	return bs.axpy(-1, y)
}

// Copy duplicates the matrix including its sparsity pattern
func (bs *BlockSparse) Copy() *BlockSparse {
	res := &BlockSparse{
		NrBlocks:  bs.NrBlocks,
		NcBlocks:  bs.NcBlocks,
		blockRows: bs.blockRows,
		blockCols: bs.blockCols,
		data:      make([]float64, len(bs.data)),
		addresses: make(map[[2]int]int, len(bs.addresses)),
	}
	copy(res.data, bs.data)
	for key, offset := range bs.addresses {
		res.addresses[key] = offset
	}
	return res
}

// SolveLeastSquares minimizes ||g - H y|| for the small dense system arising
// in GMRES. H is rows x cols upper Hessenberg with rows = cols+1. The
// reduction uses Givens rotations applied to both H and g, followed by back
// substitution.
func SolveLeastSquares(H [][]float64, rows, cols int, g []float64) []float64 {
	R := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		R[i] = make([]float64, cols)
		copy(R[i], H[i][:cols])
	}
	rhs := make([]float64, rows)
	copy(rhs, g[:rows])
	for j := 0; j < cols; j++ {
		for i := j + 1; i < rows; i++ {
			if R[i][j] == 0. {
				continue
			}
			r := math.Hypot(R[j][j], R[i][j])
			c, s := R[j][j]/r, R[i][j]/r
			for k := j; k < cols; k++ {
				R[j][k], R[i][k] = c*R[j][k]+s*R[i][k], -s*R[j][k]+c*R[i][k]
			}
			rhs[j], rhs[i] = c*rhs[j]+s*rhs[i], -s*rhs[j]+c*rhs[i]
		}
	}
	y := make([]float64, cols)
	for i := cols - 1; i >= 0; i-- {
		sum := rhs[i]
		for k := i + 1; k < cols; k++ {
			sum -= R[i][k] * y[k]
		}
		y[i] = sum / R[i][i]
	}
	return y
}

// GMRES solves A x = b where A is the receiver and b is a dense block vector.
// The returned x is a dense block vector. Iteration stops on Arnoldi
// breakdown below tol or after maxIter steps, whichever comes first.
func (bs *BlockSparse) GMRES(b *BlockSparse, tol float64, maxIter int) *BlockSparse {
	if b.NcBlocks != 1 {
		panic("GMRES: rhs must be a dense block vector")
	}
	// With x0 = 0 the initial residual is b
	x := NewBlockVector(bs.NrBlocks, b.blockRows, b.blockCols)
	beta := b.FrobNorm()
	if beta < tol {
		return x
	}
	V := make([]*BlockSparse, maxIter+1)
	V[0] = b.Copy()
	V[0].Scale(1. / beta)
	H := make([][]float64, maxIter+1)
	for i := range H {
		H[i] = make([]float64, maxIter)
	}
	g := make([]float64, maxIter+1)
	g[0] = beta

	var j int
	for j = 0; j < maxIter; j++ {
		// Arnoldi step, orthogonalize A V[j] against the basis so far
		w := bs.Mul(V[j])
		for i := 0; i <= j; i++ {
			H[i][j] = V[i].InnerProduct(w)
			w = w.axpy(-H[i][j], V[i])
		}
		hj1j := w.FrobNorm()
		H[j+1][j] = hj1j
		if hj1j < tol {
			j++
			break
		}
		w.Scale(1. / hj1j)
		V[j+1] = w
	}
	y := SolveLeastSquares(H, j+1, j, g)
	for i := 0; i < j; i++ {
		x = x.axpy(y[i], V[i])
	}
	return x
}

func generateDenseAddresses(numBlocks int) [][2]int {
	addrs := make([][2]int, numBlocks)
	for i := 0; i < numBlocks; i++ {
		addrs[i] = [2]int{i, 0}
	}
	return addrs
}
