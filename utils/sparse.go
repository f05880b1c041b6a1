package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed",
	}
	return
}

// Dims, At and T give the wrapper the mat.Matrix interface.
func (m DOK) Dims() (r, c int)              { return m.M.Dims() }
func (m DOK) At(i, j int) float64           { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix                 { return m.M.T() }
func (m DOK) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m DOK) Data() []float64 {
	return m.RawMatrix().Data
}

// Assign writes values at column-major node ids, matching the Matrix
// convention
func (m DOK) Assign(I Index, AI interface{}) DOK {
	if err := m.IndexedAssign(I, AI); err != nil {
		panic(err)
	}
	return m
}

func (m DOK) Equate(ValuesI interface{}, RangeO ...interface{}) {
	var (
		nr, nc       = m.Dims()
		I, converted = expandRangeO(nr, nc, RangeO)
		Values       = expandValues(len(I), ValuesI)
	)
	m.checkWritable()
	for ii, val := range Values {
		var i, j int
		if converted {
			i, j = indexToIJColMajor(I[ii], nr)
		} else {
			i, j = indexToIJ(I[ii], nc)
		}
		m.M.Set(i, j, val)
	}
}

func (m DOK) IndexedAssign(I Index, ValI interface{}) (err error) { // in place
	var (
		temp  []float64
		nr, _ = m.Dims()
	)
	m.checkWritable()
	switch Val := ValI.(type) {
	case []float64:
		temp = Val
	case Matrix:
		temp = Val.Data()
	case Index:
		temp = make([]float64, len(I))
		for i, val := range Val {
			temp[i] = float64(val)
		}
	}
	if len(I) != len(temp) {
		err = fmt.Errorf("IndexedAssign: %d indices but %d values", len(I), len(temp))
		return
	}
	for ii, val := range temp {
		// I carries column-major node ids
		i, j := indexToIJColMajor(I[ii], nr)
		m.M.Set(i, j, val)
	}
	return
}

func (m DOK) checkWritable() {
	if m.readOnly {
		panic(fmt.Errorf("write to read only matrix %q", m.name))
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

func NewCSR(nr, nc int) (R CSR) {
	R = CSR{
		// A valid empty CSR needs the row offset slice allocated
		sparse.NewCSR(nr, nc, make([]int, nr+1), []int{}, []float64{}),
		false,
		"unnamed",
	}
	return
}

// Dims, At and T give the wrapper the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) Data() []float64 {
	return m.RawMatrix().Data
}

// Assign writes values at column-major node ids, matching the Matrix
// convention
func (m CSR) Assign(I Index, AI interface{}) CSR {
	if err := m.IndexedAssign(I, AI); err != nil {
		panic(err)
	}
	return m
}

func (m CSR) Equate(ValuesI interface{}, RangeO ...interface{}) {
	var (
		nr, nc       = m.Dims()
		I, converted = expandRangeO(nr, nc, RangeO)
		Values       = expandValues(len(I), ValuesI)
	)
	m.checkWritable()
	for ii, val := range Values {
		var i, j int
		if converted {
			i, j = indexToIJColMajor(I[ii], nr)
		} else {
			i, j = indexToIJ(I[ii], nc)
		}
		m.M.Set(i, j, val)
	}
}

func (m CSR) IndexedAssign(I Index, ValI interface{}) (err error) { // in place
	var (
		temp  []float64
		nr, _ = m.Dims()
	)
	m.checkWritable()
	switch Val := ValI.(type) {
	case []float64:
		temp = Val
	case Matrix:
		temp = Val.Data()
	case Index:
		temp = make([]float64, len(I))
		for i, val := range Val {
			temp[i] = float64(val)
		}
	}
	if len(I) != len(temp) {
		err = fmt.Errorf("IndexedAssign: %d indices but %d values", len(I), len(temp))
		return
	}
	for ii, val := range temp {
		// I carries column-major node ids
		i, j := indexToIJColMajor(I[ii], nr)
		m.M.Set(i, j, val)
	}
	return
}

func (m CSR) checkWritable() {
	if m.readOnly {
		panic(fmt.Errorf("write to read only matrix %q", m.name))
	}
}

func indexToIJ(ind, nc int) (i, j int) {
	// Flat index is j + nc*i
	i = ind / nc
	j = ind - i*nc
	return
}

func indexToIJColMajor(ind, nr int) (i, j int) {
	// Flat index is i + nr*j
	j = ind / nr
	i = ind - j*nr
	return
}
