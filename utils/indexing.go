package utils

import "fmt"

// Index is a set of zero based flat positions into vectors and column major
// matrix storage
type Index []int

// Index2D addresses a set of (row, col) positions in an nr x nc column major
// layout. With cross set, the constructor expands the outer product of the
// row and column index sets instead of pairing them elementwise.
type Index2D struct {
	Ind    Index // Flat index, ri + nr*ci
	RI, CI Index
	Len    int
}

func NewIndex2D(nr, nc int, RI, CI Index, crossO ...bool) (I2 Index2D, err error) {
	if len(crossO) != 0 && crossO[0] {
		RI, CI = crossProduct(RI, CI)
	}
	if len(RI) != len(CI) {
		err = fmt.Errorf("row and column index sets differ in length: %d vs %d",
			len(RI), len(CI))
		return
	}
	I2 = Index2D{
		RI:  RI,
		CI:  CI,
		Len: len(RI),
		Ind: make(Index, len(RI)),
	}
	for i := range RI {
		ri, ci := RI[i], CI[i]
		if ri < 0 || ci < 0 || ri >= nr || ci >= nc {
			err = fmt.Errorf("index (%d,%d) outside a %dx%d matrix", ri, ci, nr, nc)
			return
		}
		I2.Ind[i] = ri + nr*ci
	}
	return
}

// crossProduct expands all pairings of two index sets, row varying fastest
func crossProduct(RI, CI Index) (rExp, cExp Index) {
	rExp = make(Index, 0, len(RI)*len(CI))
	cExp = make(Index, 0, len(RI)*len(CI))
	for _, ci := range CI {
		for _, ri := range RI {
			rExp = append(rExp, ri)
			cExp = append(cExp, ci)
		}
	}
	return
}

func (I2 Index2D) ToIndex() Index {
	return I2.Ind
}

func NewIndex(N int, dataO ...[]int) (I Index) {
	I = make(Index, N)
	if len(dataO) != 0 {
		copy(I, dataO[0])
	}
	return
}

// NewRangeOffset builds an index from a 1 based inclusive range, the way
// mesh files number their elements
func NewRangeOffset(rmin, rmax int) (r Index) {
	return NewRange(rmin-1, rmax-1)
}

// NewRange builds an index covering [rmin, rmax] inclusive
func NewRange(rmin, rmax int) (r Index) {
	r = make(Index, rmax-rmin+1)
	for i := range r {
		r[i] = rmin + i
	}
	return
}

func NewOnes(N int) (r Index) {
	r = make(Index, N)
	for i := range r {
		r[i] = 1
	}
	return
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = ival + val
	}
	return
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

// Subset gathers I at the positions listed in J
func (I Index) Subset(J Index) (r Index) {
	r = make(Index, len(J))
	for j, pos := range J {
		r[j] = I[pos]
	}
	return
}

func (I Index) Apply(f func(val int) int) (r Index) {
	r = make(Index, len(I))
	for i, val := range I {
		r[i] = f(val)
	}
	return
}

// Outer forms the product matrix A[i,j] = I[i]*J[j]
func (I Index) Outer(J Index) (A Matrix) {
	A = NewMatrix(len(I), len(J))
	for i, iv := range I {
		for j, jv := range J {
			A.Set(i, j, float64(iv*jv))
		}
	}
	return
}

// FindVec returns the positions where I compares true against the paired
// entry of Values
func (I Index) FindVec(op EvalOp, Values Index) (J Index) {
	var cmp func(a, b int) bool
	switch op {
	case Equal:
		cmp = func(a, b int) bool { return a == b }
	case Less:
		cmp = func(a, b int) bool { return a < b }
	case LessOrEqual:
		cmp = func(a, b int) bool { return a <= b }
	case Greater:
		cmp = func(a, b int) bool { return a > b }
	case GreaterOrEqual:
		cmp = func(a, b int) bool { return a >= b }
	}
	for i, val := range I {
		if cmp(val, Values[i]) {
			J = append(J, i)
		}
	}
	return
}
