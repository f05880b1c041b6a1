package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incflow/utils"
)

func TestJacobiOrthonormality(t *testing.T) {
	// Gram entries under Gauss Jacobi quadrature, exact when the point count
	// covers degree m+n
	gram := func(alpha, beta float64, m, n, quadOrder int) (g float64) {
		X, W := JacobiGQ(alpha, beta, quadOrder)
		Pm := JacobiP(X, alpha, beta, m)
		Pn := JacobiP(X, alpha, beta, n)
		for i := 0; i < X.Len(); i++ {
			g += W.AtVec(i) * Pm[i] * Pn[i]
		}
		return
	}
	{ // Quadrature weights integrate the weight function itself
		for _, ab := range [][2]float64{{0, 0}, {1, 1}, {0.3, 0.7}} {
			alpha, beta := ab[0], ab[1]
			_, W := JacobiGQ(alpha, beta, 6)
			assert.InDelta(t, gamma0(alpha, beta), W.Sum(), 1.e-12)
		}
	}
	{ // The basis is orthonormal under its own weight
		const Nmax = 6
		for _, ab := range [][2]float64{{0, 0}, {0.3, 0.7}} {
			alpha, beta := ab[0], ab[1]
			for m := 0; m <= Nmax; m++ {
				for n := 0; n <= Nmax; n++ {
					expected := 0.
					if m == n {
						expected = 1.
					}
					assert.InDeltaf(t, expected, gram(alpha, beta, m, n, Nmax+2), 1.e-12,
						"(%g,%g) orders %d,%d", alpha, beta, m, n)
				}
			}
		}
	}
	{ // Legendre closed forms anchor the normalization
		r := utils.NewVector(3, []float64{-0.8, 0.1, 0.9})
		p0 := JacobiP(r, 0, 0, 0)
		p1 := JacobiP(r, 0, 0, 1)
		p2 := JacobiP(r, 0, 0, 2)
		for i := 0; i < r.Len(); i++ {
			x := r.AtVec(i)
			assert.InDelta(t, 1./math.Sqrt2, p0[i], 1.e-14)
			assert.InDelta(t, math.Sqrt(1.5)*x, p1[i], 1.e-14)
			assert.InDelta(t, math.Sqrt(2.5)*0.5*(3*x*x-1), p2[i], 1.e-13)
		}
	}
	{ // GradJacobiP matches a central difference away from the endpoints
		const h = 1.e-6
		for _, order := range []int{1, 3, 5} {
			for _, x := range []float64{-0.7, 0., 0.4} {
				xm := utils.NewVector(1, []float64{x - h})
				xp := utils.NewVector(1, []float64{x + h})
				fd := (JacobiP(xp, 0, 0, order)[0] - JacobiP(xm, 0, 0, order)[0]) / (2 * h)
				dp := GradJacobiP(utils.NewVector(1, []float64{x}), 0, 0, order)[0]
				assert.InDeltaf(t, fd, dp, 1.e-5, "order %d at x=%g", order, x)
			}
		}
	}
	{ // Vandermonde of Gauss Lobatto nodes is well conditioned and invertible
		for N := 1; N <= 6; N++ {
			R, _ := JacobiGL(0, 0, N)
			V := Vandermonde1D(N, R)
			Vinv, err := V.Inverse()
			assert.Nil(t, err)
			I := V.Mul(Vinv)
			for i := 0; i <= N; i++ {
				for j := 0; j <= N; j++ {
					expected := 0.
					if i == j {
						expected = 1.
					}
					assert.InDelta(t, expected, I.At(i, j), 1.e-10)
				}
			}
		}
	}
}
