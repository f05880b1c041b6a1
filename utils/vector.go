package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V     *mat.VecDense
	DataP []float64 // Direct access to the backing data slice
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			panic(fmt.Errorf("NewVector: length %d vector, data has %d values", n, len(dataO[0])))
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{
		v,
		v.RawVector().Data,
	}
	return
}

// Dims, At and T give the wrapper the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

// Composable operations, each returns a Vector
func (v Vector) Set(val float64) Vector { // in place
	for i := range v.DataP {
		v.DataP[i] = val
	}
	return v
}

func (v Vector) Scale(val float64) Vector { // in place
	for i := range v.DataP {
		v.DataP[i] *= val
	}
	return v
}

func (v Vector) AddScalar(val float64) Vector { // in place
	for i := range v.DataP {
		v.DataP[i] += val
	}
	return v
}

func (v Vector) Add(a Vector) Vector { // in place
	for i, val := range a.DataP {
		v.DataP[i] += val
	}
	return v
}

func (v Vector) Subtract(a Vector) Vector { // in place
	for i, val := range a.DataP {
		v.DataP[i] -= val
	}
	return v
}

func (v Vector) ElMul(a Vector) Vector { // in place
	for i, val := range a.DataP {
		v.DataP[i] *= val
	}
	return v
}

func (v Vector) ElDiv(a Vector) Vector { // in place
	for i, val := range a.DataP {
		v.DataP[i] /= val
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector { // in place
	for i, val := range v.DataP {
		v.DataP[i] = f(val)
	}
	return v
}

func (v Vector) POW(p int) Vector { // in place
	for i, val := range v.DataP {
		v.DataP[i] = POW(val, p)
	}
	return v
}

func (v Vector) Abs() Vector { // in place
	for i, val := range v.DataP {
		v.DataP[i] = math.Abs(val)
	}
	return v
}

// Linspace fills the vector with linearly spaced values over [xmin, xmax]
func (v Vector) Linspace(xmin, xmax float64) Vector { // in place
	var (
		n = v.Len()
	)
	if n == 1 {
		v.DataP[0] = xmin
		return v
	}
	h := (xmax - xmin) / float64(n-1)
	for i := range v.DataP {
		v.DataP[i] = xmin + h*float64(i)
	}
	return v
}

func (v Vector) Copy() (R Vector) { // allocates
	R = NewVector(v.Len())
	copy(R.DataP, v.DataP)
	return
}

func (v Vector) Subset(I Index) (R Vector) { // allocates
	R = NewVector(len(I))
	for i, ind := range I {
		R.DataP[i] = v.DataP[ind]
	}
	return
}

func (v Vector) Concat(a Vector) (R Vector) { // allocates
	var (
		n = v.Len() + a.Len()
	)
	R = NewVector(n)
	copy(R.DataP, v.DataP)
	copy(R.DataP[v.Len():], a.DataP)
	return
}

// Scalar and error returning methods
func (v Vector) Min() (min float64) {
	min = v.DataP[0]
	for _, val := range v.DataP {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	max = v.DataP[0]
	for _, val := range v.DataP {
		if val > max {
			max = val
		}
	}
	return
}

func (v Vector) Sum() (sum float64) {
	for _, val := range v.DataP {
		sum += val
	}
	return
}

func (v Vector) Dot(a Vector) (dot float64) {
	for i, val := range v.DataP {
		dot += val * a.DataP[i]
	}
	return
}

// Find returns the positions of values satisfying op, optionally comparing
// absolute values
func (v Vector) Find(op EvalOp, val float64, abs bool) (I Index) {
	for i, target := range v.DataP {
		if abs {
			target = math.Abs(target)
		}
		switch op {
		case Equal:
			if target == val {
				I = append(I, i)
			}
		case Less:
			if target < val {
				I = append(I, i)
			}
		case LessOrEqual:
			if target <= val {
				I = append(I, i)
			}
		case Greater:
			if target > val {
				I = append(I, i)
			}
		case GreaterOrEqual:
			if target >= val {
				I = append(I, i)
			}
		}
	}
	return
}

func (v Vector) ToIndex() (I Index) {
	I = make(Index, v.Len())
	for i, val := range v.DataP {
		I[i] = int(val)
	}
	return
}

func (v Vector) ToMatrix() (R Matrix) {
	// Column matrix from vector
	R = NewMatrix(v.Len(), 1, v.Copy().DataP)
	return
}

func (v Vector) Transpose() (R Matrix) {
	// Row matrix from vector
	R = NewMatrix(1, v.Len(), v.Copy().DataP)
	return
}

// Mul computes the outer product of v with a
func (v Vector) Mul(a Vector) (R Matrix) {
	R = v.ToMatrix().Mul(a.Transpose())
	return
}

// Outer is a synonym of Mul, the outer product
func (v Vector) Outer(a Vector) (R Matrix) {
	return v.Mul(a)
}

func (v Vector) String() (out string) {
	out = fmt.Sprintf("%v\n", mat.Formatted(v.V, mat.Squeeze()))
	return
}
