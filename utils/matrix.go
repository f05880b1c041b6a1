package utils

import (
	"fmt"

	"gonum.org/v1/gonum/lapack/lapack64"

	"gonum.org/v1/gonum/blas/blas64"

	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M        *mat.Dense
	DataP    []float64 // Direct access to the backing data slice
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			panic(fmt.Errorf("NewMatrix: %dx%d matrix needs %d values, data has %d", nr, nc, nr*nc, len(dataO[0])))
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		m,
		m.RawMatrix().Data,
		false,
		"unnamed, pass a name to SetReadOnly() to label it",
	}
	return
}

// NewSymTriDiagonal composes a dense symmetric matrix from the main diagonal
// d0 and the first super diagonal d1, suitable for the eigensolver.
func NewSymTriDiagonal(d0, d1 []float64) (J *mat.SymDense) {
	var (
		n = len(d0)
	)
	J = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		J.SetSym(i, i, d0[i])
		if i < n-1 {
			J.SetSym(i, i+1, d1[i])
		}
	}
	return
}

// Dims, At and T give the wrapper the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.DataP }

func (m Matrix) IsEmpty() bool { return m.M == nil }

// IsScalar reports a 1x1 matrix. A scalar cell in a block matrix stands for
// that multiple of the identity, and Mul, Add and Subtract broadcast it.
func (m Matrix) IsScalar() bool {
	nr, nc := m.Dims()
	return nr == 1 && nc == 1
}

// Composable operations, each returns a Matrix
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m *Matrix) SetWritable() Matrix {
	m.readOnly = false
	return *m
}

func (m Matrix) Slice(I, K, J, L int) (R Matrix) { // allocates
	var (
		nrR   = K - I
		ncR   = L - J
		_, nc = m.Dims()
		data  = m.DataP
	)
	R = NewMatrix(nrR, ncR)
	for i := I; i < K; i++ {
		for j := J; j < L; j++ {
			R.DataP[(i-I)*ncR+(j-J)] = data[i*nc+j]
		}
	}
	return
}

func (m Matrix) Copy() (R Matrix) { // allocates
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	copy(R.DataP, m.DataP)
	return
}

func (m Matrix) Transpose() (R Matrix) { // allocates
	var (
		nr, nc = m.Dims()
		data   = m.DataP
	)
	R = NewMatrix(nc, nr)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.DataP[j*nr+i] = data[i*nc+j]
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // allocates
	var (
		nrM, ncM = m.M.Dims()
		nrA, ncA = A.M.Dims()
	)
	if ncM != nrA {
		// A scalar operand scales the other unless dimensions allow a true product
		if m.IsScalar() {
			return A.Copy().Scale(m.DataP[0])
		}
		if A.IsScalar() {
			return m.Copy().Scale(A.DataP[0])
		}
	}
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return R
}

func (m Matrix) Subset(I Index, newDims ...int) (R Matrix) { // allocates
	// Gathers the values at flat indices I into a new matrix. Flat indices
	// are column-major (volume node ids), matching the element-wise storage
	// convention of the solver.
	var (
		nr, nc       = m.Dims()
		nrNew, ncNew = nr, nc
	)
	if len(newDims) != 0 {
		nrNew, ncNew = newDims[0], newDims[1]
	}
	R = NewMatrix(nrNew, ncNew)
	for i, ind := range I {
		indC := RowMajorToColMajor(nr, nc, ind)
		indD := RowMajorToColMajor(nrNew, ncNew, i)
		R.DataP[indD] = m.DataP[indC]
	}
	return
}

func (m Matrix) SliceRows(I Index) (R Matrix) { // allocates
	// Gathers the rows listed in I, in order
	var (
		nr, nc   = m.Dims()
		nI       = len(I)
		maxIndex = nr - 1
	)
	R = NewMatrix(nI, nc)
	for iNewRow, i := range I {
		if i > maxIndex || i < 0 {
			panic(fmt.Errorf("SliceRows: row %d out of range, max %d", i, maxIndex))
		}
		R.M.SetRow(iNewRow, m.M.RawRowView(i))
	}
	return
}

func (m Matrix) SliceCols(I Index) (R Matrix) { // allocates
	var (
		nr, nc   = m.Dims()
		maxIndex = nc - 1
		nI       = len(I)
		colData  = make([]float64, nr)
	)
	R = NewMatrix(nr, nI)
	for jNewCol, j := range I {
		if j > maxIndex || j < 0 {
			panic(fmt.Errorf("SliceCols: column %d out of range, max %d", j, maxIndex))
		}
		for i := 0; i < nr; i++ {
			colData[i] = m.DataP[i*nc+j]
		}
		R.M.SetCol(jNewCol, colData)
	}
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // in place
	var (
		nr, nc = m.Dims()
	)
	i, j = lim(i, nr), lim(j, nc)
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRange(i1, i2, j1, j2 int, val float64) Matrix { // in place
	var (
		nr, nc = m.Dims()
		data   = m.DataP
	)
	m.checkWritable()
	i1, i2, j1, j2 = limRange(i1, i2, j1, j2, nr, nc)
	for i := i1; i < i2; i++ {
		for j := j1; j < j2; j++ {
			data[i*nc+j] = val
		}
	}
	return m
}

func (m Matrix) SetCol(j int, data []float64) Matrix { // in place
	var (
		_, nc = m.Dims()
	)
	j = lim(j, nc)
	m.checkWritable()
	m.M.SetCol(j, data)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // in place
	var (
		nr, _ = m.Dims()
	)
	i = lim(i, nr)
	m.checkWritable()
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Add(A Matrix) Matrix { // in place unless the receiver is a broadcast scalar
	var (
		nrM, ncM = m.Dims()
		nrA, ncA = A.Dims()
	)
	if nrM != nrA || ncM != ncA {
		if A.IsScalar() {
			return m.diagShift(A.DataP[0])
		}
		if m.IsScalar() {
			return A.Copy().diagShift(m.DataP[0])
		}
	}
	m.checkWritable()
	for i, val := range A.DataP {
		m.DataP[i] += val
	}
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix { // in place unless the receiver is a broadcast scalar
	var (
		nrM, ncM = m.Dims()
		nrA, ncA = A.Dims()
	)
	if nrM != nrA || ncM != ncA {
		if A.IsScalar() {
			return m.diagShift(-A.DataP[0])
		}
		if m.IsScalar() {
			return A.Copy().Scale(-1).diagShift(m.DataP[0])
		}
	}
	m.checkWritable()
	for i, val := range A.DataP {
		m.DataP[i] -= val
	}
	return m
}

// diagShift adds val along the main diagonal, the identity broadcast of a
// scalar cell against a square matrix cell.
func (m Matrix) diagShift(val float64) Matrix { // in place
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		panic(fmt.Errorf("cannot broadcast a scalar against a %dx%d matrix", nr, nc))
	}
	m.checkWritable()
	for i := 0; i < nr; i++ {
		m.DataP[i*nc+i] += val
	}
	return m
}

func (m Matrix) AssignColumns(I Index, A Matrix) Matrix { // in place
	var (
		_, nc = m.Dims()
	)
	// Column i of A lands at column I[i] of the receiver
	m.checkWritable()
	for i, j := range I {
		if j > nc-1 {
			panic(fmt.Errorf("AssignColumns: column %d out of range, have %d columns", j, nc))
		}
		m.SetCol(j, A.Col(i).DataP)
	}
	return m
}

func (m Matrix) Assign(I Index, AI interface{}) Matrix { // in place
	// Assigns values at column-major node ids I, reading AI sequentially in
	// the same node id order
	var (
		nr, nc = m.Dims()
		vals   []float64
	)
	m.checkWritable()
	switch A := AI.(type) {
	case Matrix:
		nrA, ncA := A.Dims()
		vals = make([]float64, len(I))
		for i := range vals {
			vals[i] = A.DataP[RowMajorToColMajor(nrA, ncA, i)]
		}
	default:
		vals = expandValues(len(I), AI)
	}
	for i, ind := range I {
		m.DataP[RowMajorToColMajor(nr, nc, ind)] = vals[i]
	}
	return m
}

func (m Matrix) Scale(a float64) Matrix { // in place
	m.checkWritable()
	for i := range m.DataP {
		m.DataP[i] *= a
	}
	return m
}

func (m Matrix) AddScalar(a float64) Matrix { // in place
	m.checkWritable()
	for i := range m.DataP {
		m.DataP[i] += a
	}
	return m
}

func (m Matrix) Apply(f func(float64) float64) Matrix { // in place
	m.checkWritable()
	for i, val := range m.DataP {
		m.DataP[i] = f(val)
	}
	return m
}

func (m Matrix) Apply2(A Matrix, f func(float64, float64) float64) Matrix { // in place
	m.checkWritable()
	for i, val := range m.DataP {
		m.DataP[i] = f(val, A.DataP[i])
	}
	return m
}

func (m Matrix) POW(p int) Matrix { // in place
	m.checkWritable()
	for i, val := range m.DataP {
		m.DataP[i] = POW(val, p)
	}
	return m
}

func (m Matrix) ElMul(A Matrix) Matrix { // in place
	m.checkWritable()
	for i, val := range A.DataP {
		m.DataP[i] *= val
	}
	return m
}

func (m Matrix) ElDiv(A Matrix) Matrix { // in place
	m.checkWritable()
	for i, val := range A.DataP {
		m.DataP[i] /= val
	}
	return m
}

func (m Matrix) AssignScalar(I Index, val float64) Matrix { // in place
	var (
		nr, nc = m.Dims()
	)
	m.checkWritable()
	for _, ind := range I {
		i := RowMajorToColMajor(nr, nc, ind)
		m.DataP[i] = val
	}
	return m
}

// Range extracts values specified by ParseDim phrases, e.g.
// M.Range(":", 2) is column 2, M.Range("end", ":") is the last row.
// An explicit Index argument is interpreted as column-major node ids.
func (m Matrix) Range(RangeO ...interface{}) (r []float64) {
	var (
		nr, nc       = m.Dims()
		I, converted = expandRangeO(nr, nc, RangeO)
	)
	r = make([]float64, len(I))
	for i, ind := range I {
		if converted {
			ind = RowMajorToColMajor(nr, nc, ind)
		}
		r[i] = m.DataP[ind]
	}
	return
}

// Equate assigns values to indexed locations, e.g.
// M.Equate(V, ":", 3) is M(:,3) = V and M.Equate(2., I, ":") is M(I,:) = 2.
// An explicit Index argument is interpreted as column-major node ids.
func (m Matrix) Equate(ValuesI interface{}, RangeO ...interface{}) { // in place
	var (
		nr, nc       = m.Dims()
		I, converted = expandRangeO(nr, nc, RangeO)
		Values       = expandValues(len(I), ValuesI)
	)
	m.checkWritable()
	for i, ind := range I {
		if converted {
			ind = RowMajorToColMajor(nr, nc, ind)
		}
		m.DataP[ind] = Values[i]
	}
}

// expandRangeO composes flat indices into the backing data slice. Phrase
// ranges index storage directly, while an explicit Index carries column-major
// node ids that the caller still needs converted, flagged by colMajor.
func expandRangeO(nr, nc int, RangeO []interface{}) (I Index, colMajor bool) {
	var (
		err error
	)
	switch len(RangeO) {
	case 1:
		switch val := RangeO[0].(type) {
		case Index:
			I = val
			colMajor = true
		case []int:
			I = val
			colMajor = true
		default:
			I = NewR1(nr * nc).Range(RangeO[0])
		}
	case 2:
		I2 := NewR2(nr, nc)
		I = I2.Range(RangeO[0], RangeO[1])
	default:
		err = fmt.Errorf("only 1D and 2D ranges supported, have %d dimensions", len(RangeO))
		panic(err)
	}
	return
}

func expandValues(nVal int, ValuesI interface{}) (vals []float64) {
	switch values := ValuesI.(type) {
	case float64:
		vals = ConstArray(values, nVal)
	case int:
		vals = ConstArray(float64(values), nVal)
	case []float64:
		vals = values
	case Vector:
		vals = values.DataP
	case Matrix:
		vals = values.DataP
	case Index:
		vals = make([]float64, len(values))
		for i, val := range values {
			vals[i] = float64(val)
		}
	default:
		panic("unable to expand values")
	}
	if len(vals) != nVal {
		err := fmt.Errorf("number of values not equal to index: have %d, need %d", len(vals), nVal)
		panic(err)
	}
	return
}

// ResetView rebinds the matrix to use data as its backing store, so that the
// matrix becomes a view over externally owned memory.
func (m *Matrix) ResetView(data []float64) (err error) {
	var (
		nr, nc = m.Dims()
	)
	if len(data) != nr*nc {
		err = fmt.Errorf("ResetView: %dx%d matrix needs %d values, data has %d", nr, nc, nr*nc, len(data))
		return
	}
	m.M = mat.NewDense(nr, nc, data)
	m.DataP = data
	return
}

// Scalar and error returning methods
func (m Matrix) IndexedAssign(I2 Index2D, Val Index) (err error) { // in place
	var (
		nr, nc = m.Dims()
	)
	m.checkWritable()
	if I2.Len != len(Val) {
		err = fmt.Errorf("IndexedAssign: %d indices but %d values", I2.Len, len(Val))
		return
	}
	for i, val := range Val {
		m.DataP[RowMajorToColMajor(nr, nc, I2.Ind[i])] = float64(val)
	}
	return
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	R = m.Copy()
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("Inverse: matrix is singular")
		return
	}
	work := make([]float64, nr*nc)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
		err = fmt.Errorf("Inverse: matrix is singular")
	}
	return
}

func (m Matrix) InverseWithCheck() (R Matrix) {
	var (
		err error
	)
	if R, err = m.Inverse(); err != nil {
		panic(err)
	}
	return
}

// LUSolve solves m * X = B for X using the LU decomposition of m
func (m Matrix) LUSolve(B Matrix) (X Matrix) {
	var (
		err error
		lu  mat.LU
	)
	lu.Factorize(m)
	X = NewMatrix(B.Dims())
	if err = lu.SolveTo(X.M, false, B.M); err != nil {
		panic(err)
	}
	return
}

func (m Matrix) Col(j int) Vector {
	var (
		nr, nc = m.M.Dims()
		vData  = make([]float64, nr)
	)
	j = lim(j, nc)
	for i := range vData {
		vData[i] = m.DataP[i*nc+j]
	}
	return NewVector(nr, vData)
}

func (m Matrix) Row(i int) Vector {
	var (
		nr, nc = m.M.Dims()
		vData  = make([]float64, nc)
	)
	i = lim(i, nr)
	for j := range vData {
		vData[j] = m.DataP[j+i*nc]
	}
	return NewVector(nc, vData)
}

func (m Matrix) Min() (min float64) {
	min = m.DataP[0]
	for _, val := range m.DataP {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	max = m.DataP[0]
	for _, val := range m.DataP {
		if val > max {
			max = val
		}
	}
	return
}

// EvalOp selects the comparison applied by the Find methods
type EvalOp uint8

const (
	Equal EvalOp = iota
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)

// Find returns the flat (column-major) indices of values satisfying op
func (m Matrix) Find(op EvalOp, val float64, abs bool) (I Index) {
	var (
		nr, nc = m.Dims()
	)
	comp := func(target float64) float64 { return target }
	if abs {
		comp = func(target float64) float64 {
			if target < 0 {
				return -target
			}
			return target
		}
	}
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			target := comp(m.DataP[i*nc+j])
			ind := i + nr*j
			switch op {
			case Equal:
				if target == val {
					I = append(I, ind)
				}
			case Less:
				if target < val {
					I = append(I, ind)
				}
			case LessOrEqual:
				if target <= val {
					I = append(I, ind)
				}
			case Greater:
				if target > val {
					I = append(I, ind)
				}
			case GreaterOrEqual:
				if target >= val {
					I = append(I, ind)
				}
			}
		}
	}
	return
}

func (m Matrix) SubsetVector(I Index) (V Vector) {
	var (
		nr, nc = m.Dims()
		data   = make([]float64, len(I))
	)
	for i, ind := range I {
		data[i] = m.DataP[RowMajorToColMajor(nr, nc, ind)]
	}
	V = NewVector(len(I), data)
	return
}

func (m Matrix) String() (out string) {
	out = fmt.Sprintf("%v\n", mat.Formatted(m.M, mat.Squeeze()))
	return
}

func (m Matrix) Print(msgI ...string) (out string) {
	var (
		msg = ""
	)
	if len(msgI) != 0 {
		msg = msgI[0]
	}
	out = fmt.Sprintf("%s = \n%8.5f\n", msg, mat.Formatted(m.M, mat.Squeeze()))
	fmt.Print(out)
	return
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		panic(fmt.Errorf("write to read only matrix %q", m.name))
	}
}

// MatFind locates values in a generic matrix, used on sparse connectivity
func MatFind(MI mat.Matrix, op EvalOp, val float64) (I Index2D) {
	var (
		nr, nc         = MI.Dims()
		rowInd, colInd Index
		err            error
	)
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			switch op {
			case Equal:
				if MI.At(i, j) == val {
					rowInd = append(rowInd, i)
					colInd = append(colInd, j)
				}
			case Less:
				if MI.At(i, j) < val {
					rowInd = append(rowInd, i)
					colInd = append(colInd, j)
				}
			case Greater:
				if MI.At(i, j) > val {
					rowInd = append(rowInd, i)
					colInd = append(colInd, j)
				}
			}
		}
	}
	if I, err = NewIndex2D(nr, nc, rowInd, colInd); err != nil {
		panic(err)
	}
	return
}

func RowMajorToColMajor(nr, nc, ind int) (cind int) {
	// A column-major flat index is i + nr*j, the row-major one is j + nc*i
	j := ind / nr
	i := ind - nr*j
	cind = j + nc*i
	return
}

func lim(i, imax int) int {
	if i < 0 {
		return imax + i // Negative indices count back from the end, -1 is imax
	}
	return i
}

func limLoop(ib, ie, imax int) (ibeg, iend int) {
	if ib < 0 {
		ibeg = imax + ib
	} else {
		ibeg = ib
	}
	if ie < 0 {
		iend = imax + ie + 1 // Negative end indices count back from imax
	} else {
		iend = ie + 1
	}
	return
}

func limRange(i1, i2, j1, j2, nr, nc int) (ii1, ii2, jj1, jj2 int) {
	ii1, ii2 = limLoop(i1, i2, nr)
	jj1, jj2 = limLoop(j1, j2, nc)
	return ii1, ii2, jj1, jj2
}
