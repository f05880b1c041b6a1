package DG2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incflow/utils"
)

func TestLagrangeElement2D(t *testing.T) {
	{ // Node counts and distribution
		for N := 1; N <= 5; N++ {
			el := NewLagrangeElement2D(N)
			assert.Equal(t, (N+1)*(N+2)/2, el.Np)
			assert.Equal(t, N+1, el.Nfp)
			assert.Equal(t, 3, el.NFaces)
			// All nodes lie within the reference triangle
			for i := 0; i < el.Np; i++ {
				r, s := el.R.AtVec(i), el.S.AtVec(i)
				assert.True(t, r >= -1.-1.e-10)
				assert.True(t, s >= -1.-1.e-10)
				assert.True(t, r+s <= 1.e-10)
			}
		}
	}
	{ // The three vertices are nodes for every order
		el := NewLagrangeElement2D(3)
		corners := [][2]float64{{-1, -1}, {1, -1}, {-1, 1}}
		for _, c := range corners {
			var found bool
			for i := 0; i < el.Np; i++ {
				if math.Abs(el.R.AtVec(i)-c[0]) < 1.e-10 &&
					math.Abs(el.S.AtVec(i)-c[1]) < 1.e-10 {
					found = true
				}
			}
			assert.True(t, found, "corner (%v,%v) missing from node set", c[0], c[1])
		}
	}
	{ // V * Vinv is the identity
		el := NewLagrangeElement2D(4)
		I := el.V.Mul(el.Vinv)
		for i := 0; i < el.Np; i++ {
			for j := 0; j < el.Np; j++ {
				expect := 0.
				if i == j {
					expect = 1.
				}
				assert.InDeltaf(t, expect, I.At(i, j), 1.e-10, "identity at %d,%d", i, j)
			}
		}
	}
	{ // Dr and Ds differentiate polynomials of the element order exactly
		N := 4
		el := NewLagrangeElement2D(N)
		for a := 0; a <= N; a++ {
			for b := 0; b <= N-a; b++ {
				F := utils.NewMatrix(el.Np, 1)
				DFr := utils.NewMatrix(el.Np, 1)
				DFs := utils.NewMatrix(el.Np, 1)
				for i := 0; i < el.Np; i++ {
					r, s := el.R.AtVec(i), el.S.AtVec(i)
					F.Set(i, 0, math.Pow(r, float64(a))*math.Pow(s, float64(b)))
					if a > 0 {
						DFr.Set(i, 0, float64(a)*math.Pow(r, float64(a-1))*math.Pow(s, float64(b)))
					}
					if b > 0 {
						DFs.Set(i, 0, float64(b)*math.Pow(r, float64(a))*math.Pow(s, float64(b-1)))
					}
				}
				DrF, DsF := el.Dr.Mul(F), el.Ds.Mul(F)
				for i := 0; i < el.Np; i++ {
					assert.InDeltaf(t, DFr.At(i, 0), DrF.At(i, 0), 1.e-8,
						"d/dr r^%d s^%d at node %d", a, b, i)
					assert.InDeltaf(t, DFs.At(i, 0), DsF.At(i, 0), 1.e-8,
						"d/ds r^%d s^%d at node %d", a, b, i)
				}
			}
		}
	}
	{ // The mass matrix integrates polynomials over the reference triangle
		el := NewLagrangeElement2D(3)
		ones := utils.NewVector(el.Np).Set(1).ToMatrix()
		RM, SM := el.R.ToMatrix(), el.S.ToMatrix()
		integrate := func(F utils.Matrix) (q float64) {
			for _, v := range el.MassMatrix.Mul(F).DataP {
				q += v
			}
			return
		}
		// Area of the reference triangle
		assert.InDelta(t, 2., integrate(ones), 1.e-10)
		// First moments, the centroid is at (-1/3, -1/3)
		assert.InDelta(t, -2./3., integrate(RM), 1.e-10)
		assert.InDelta(t, -2./3., integrate(SM), 1.e-10)
		// Second moment int r^2 over the reference triangle
		assert.InDelta(t, 2./3., integrate(RM.Copy().ElMul(RM)), 1.e-10)
	}
	{ // MassInv inverts the mass matrix
		el := NewLagrangeElement2D(4)
		I := el.MassInv.Mul(el.MassMatrix)
		for i := 0; i < el.Np; i++ {
			for j := 0; j < el.Np; j++ {
				expect := 0.
				if i == j {
					expect = 1.
				}
				assert.InDeltaf(t, expect, I.At(i, j), 1.e-8, "identity at %d,%d", i, j)
			}
		}
	}
	{ // Interpolation reproduces polynomials at arbitrary locations
		N := 3
		el := NewLagrangeElement2D(N)
		RR := utils.NewVector(3, []float64{-0.5, 0.1, -0.9})
		SS := utils.NewVector(3, []float64{-0.3, -0.4, 0.5})
		IM := el.InterpolationMatrix(RR, SS)
		f := func(r, s float64) float64 { return 1. + r + 2.*s + r*s - s*s }
		F := utils.NewMatrix(el.Np, 1)
		for i := 0; i < el.Np; i++ {
			F.Set(i, 0, f(el.R.AtVec(i), el.S.AtVec(i)))
		}
		FI := IM.Mul(F)
		for i := 0; i < RR.Len(); i++ {
			assert.InDeltaf(t, f(RR.AtVec(i), SS.AtVec(i)), FI.At(i, 0), 1.e-10,
				"interpolated value at point %d", i)
		}
	}
}
