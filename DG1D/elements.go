package DG1D

import (
	"math"

	"github.com/notargets/incflow/utils"

	"gonum.org/v1/gonum/mat"
)

// JacobiGL computes the Gauss Lobatto quadrature points for the Jacobi
// polynomial (alpha,beta), which include the interval endpoints [-1,1]
func JacobiGL(alpha, beta float64, N int) (X, W utils.Vector) {
	x := make([]float64, N+1)
	x[0], x[N] = -1, 1
	if N > 1 {
		var xint utils.Vector
		xint, W = JacobiGQ(alpha+1, beta+1, N-2)
		copy(x[1:N], xint.DataP)
	}
	X = utils.NewVector(N+1, x)
	return
}

// JacobiGQ computes the N+1 Gauss quadrature points and weights for the
// Jacobi polynomial (alpha,beta). Golub Welsch: the eigenvalues of the
// symmetric tridiagonal recurrence matrix are the nodes and the squared
// first eigenvector components scale to the weights.
func JacobiGQ(alpha, beta float64, N int) (X, W utils.Vector) {
	if N == 0 {
		x := []float64{(beta - alpha) / (alpha + beta + 2.)}
		return utils.NewVector(1, x), utils.NewVector(1, []float64{2.})
	}
	var (
		d0 = make([]float64, N+1)
		d1 = make([]float64, N)
	)
	for i := 0; i <= N; i++ {
		h1 := 2.*float64(i) + alpha + beta
		d0[i] = -.5 * (alpha*alpha - beta*beta) / (h1 * (h1 + 2.))
		if i < N {
			fi := float64(i + 1)
			d1[i] = 2. / (h1 + 2.) *
				math.Sqrt(fi*(fi+alpha+beta)*(fi+alpha)*(fi+beta)/((h1+1.)*(h1+3.)))
		}
	}
	// alpha = beta = 0 leaves the leading diagonal entry 0/0, limit zero
	if alpha+beta < 1.e-15 {
		d0[0] = 0.
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(utils.NewSymTriDiagonal(d0, d1), true); !ok {
		panic("symmetric tridiagonal eigensolve failed")
	}
	x := eig.Values(nil)
	vecs := mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(vecs)

	w := make([]float64, N+1)
	g0 := gamma0(alpha, beta)
	for i := range w {
		v0 := vecs.At(0, i)
		w[i] = v0 * v0 * g0
	}
	return utils.NewVector(N+1, x), utils.NewVector(N+1, w)
}

// LegendreZeros returns the N+1 roots of the Legendre polynomial of
// order N+1, the interior Gauss points on [-1,1]
func LegendreZeros(N int) (R []float64) {
	X, _ := JacobiGQ(0, 0, N)
	R = X.DataP
	return
}

// Vandermonde1D constructs the generalized Vandermonde matrix relating
// modal coefficients of the orthonormal Jacobi basis to nodal values at R
func Vandermonde1D(N int, R utils.Vector) (V utils.Matrix) {
	V = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j < N+1; j++ {
		V.SetCol(j, JacobiP(R, 0, 0, j))
	}
	return
}

// JacobiP evaluates the orthonormal Jacobi polynomial (alpha,beta) of
// order N at the points in r
func JacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = r.Len()
		ab = alpha + beta
	)
	// Order zero is the constant that normalizes the weight measure
	p0 := 1. / math.Sqrt(gamma0(alpha, beta))
	if N == 0 {
		p = utils.ConstArray(p0, Nc)
		return
	}
	prev := utils.ConstArray(p0, Nc)
	cur := make([]float64, Nc)
	rg1 := 1. / math.Sqrt(gamma1(alpha, beta))
	for i := 0; i < Nc; i++ {
		cur[i] = rg1 * ((ab+2.)*r.AtVec(i) + alpha - beta) / 2.
	}
	// Three term recurrence, rolling two orders of history
	aold := 2. / (ab + 2.) * math.Sqrt((alpha+1.)*(beta+1.)/(ab+3.))
	for n := 1; n < N; n++ {
		fn := float64(n)
		h1 := 2.*fn + ab
		anew := 2. / (h1 + 2.) *
			math.Sqrt((fn+1.)*(fn+ab+1.)*(fn+alpha+1.)*(fn+beta+1.)/((h1+1.)*(h1+3.)))
		bnew := -(alpha*alpha - beta*beta) / (h1 * (h1 + 2.))
		next := make([]float64, Nc)
		for j := 0; j < Nc; j++ {
			next[j] = ((r.AtVec(j)-bnew)*cur[j] - aold*prev[j]) / anew
		}
		prev, cur = cur, next
		aold = anew
	}
	p = cur
	return
}

// GradJacobiP evaluates the derivative of the orthonormal Jacobi
// polynomial (alpha,beta) of order N at the points in r
func GradJacobiP(r utils.Vector, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		return make([]float64, r.Len())
	}
	// d/dr P_N^(a,b) = sqrt(N(N+a+b+1)) P_(N-1)^(a+1,b+1)
	fac := math.Sqrt(float64(N) * (float64(N) + alpha + beta + 1.))
	p = JacobiP(r, alpha+1, beta+1, N-1)
	for i := range p {
		p[i] *= fac
	}
	return
}

// GradVandermonde1D constructs the Vandermonde matrix of basis
// derivatives, used to form the nodal differentiation matrix Dr = Vr*Vinv
func GradVandermonde1D(r utils.Vector, N int) (Vr utils.Matrix) {
	Vr = utils.NewMatrix(r.Len(), N+1)
	for j := 0; j < N+1; j++ {
		Vr.SetCol(j, GradJacobiP(r, 0, 0, j))
	}
	return
}

// gamma0 is the L2 norm squared of the order zero Jacobi polynomial, the
// integral of the weight (1-x)^alpha (1+x)^beta over [-1,1]
func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	return math.Pow(2, ab1) * math.Gamma(alpha+1.) * math.Gamma(beta+1.) /
		(ab1 * math.Gamma(ab1))
}

func gamma1(alpha, beta float64) float64 {
	return (alpha + 1.) * (beta + 1.) / (alpha + beta + 3.) * gamma0(alpha, beta)
}
