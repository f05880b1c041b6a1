package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incflow/utils"
)

func TestDifferentiationMatrix(t *testing.T) {
	{ // Dr = Vr * Vinv differentiates polynomials up to order N exactly
		N := 4
		R, _ := JacobiGL(0, 0, N)
		V := Vandermonde1D(N, R)
		Vinv, err := V.Inverse()
		assert.Nil(t, err)
		Vr := GradVandermonde1D(R, N)
		Dr := Vr.Mul(Vinv)
		for k := 0; k <= N; k++ {
			F := utils.NewMatrix(R.Len(), 1)
			DF := utils.NewMatrix(R.Len(), 1)
			for i := 0; i < R.Len(); i++ {
				r := R.AtVec(i)
				F.Set(i, 0, math.Pow(r, float64(k)))
				if k > 0 {
					DF.Set(i, 0, float64(k)*math.Pow(r, float64(k-1)))
				}
			}
			DFc := Dr.Mul(F)
			for i := 0; i < R.Len(); i++ {
				assert.InDeltaf(t, DF.At(i, 0), DFc.At(i, 0), 1.e-10,
					"d/dr r^%d at node %d", k, i)
			}
		}
	}
	{ // Gauss Lobatto points include the endpoints and are symmetric
		for N := 1; N <= 6; N++ {
			R, _ := JacobiGL(0, 0, N)
			assert.InDelta(t, -1., R.AtVec(0), 1.e-14)
			assert.InDelta(t, 1., R.AtVec(N), 1.e-14)
			for i := 0; i <= N; i++ {
				assert.InDelta(t, -R.AtVec(N-i), R.AtVec(i), 1.e-12)
			}
		}
	}
	{ // LegendreZeros returns roots of the Legendre polynomial of order N+1
		N := 3
		R := LegendreZeros(N)
		assert.Equal(t, N+1, len(R))
		for _, r := range R {
			p := JacobiP(utils.NewVector(1, []float64{r}), 0, 0, N+1)[0]
			assert.InDelta(t, 0., p, 1.e-10)
		}
	}
}
