package IncNS2D

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incflow/utils"
)

func TestElementHelmholtz(t *testing.T) {
	el := testElements(3)
	// A target with content in every expansion mode
	U0 := evalOnNodes(el, func(x, y float64) float64 {
		return 1. + x - 2.*y + 0.5*x*y + x*x - y*y*y
	})
	// Manufacture the point values f with (a M_k + c S_k) u_k = M_k f_k
	makeF := func(eh *ElementHelmholtz, a float64) (F utils.Matrix) {
		F = utils.NewMatrix(el.Np, el.K)
		for k := 0; k < el.K; k++ {
			A := eh.Mk[k].Copy().Scale(a).Add(eh.Sk[k].Copy().Scale(eh.StiffCoeff))
			rhs := A.Mul(U0.Col(k).ToMatrix())
			f := el.MassInv.Mul(rhs).Scale(1. / el.J.At(0, k))
			F.SetCol(k, f.DataP)
		}
		return
	}
	{ // The direct path recovers a manufactured solution
		eh := NewElementHelmholtz(el, 0.7, DirectSolve)
		U := eh.Solve(2.5, makeF(eh, 2.5))
		assert.InDeltaSlice(t, U0.DataP, U.DataP, 1.e-8)
	}
	{ // The iterative path agrees on the same problem
		eh := NewElementHelmholtz(el, 0.7, IterativeSolve)
		U := eh.Solve(2.5, makeF(eh, 2.5))
		assert.InDeltaSlice(t, U0.DataP, U.DataP, 1.e-6)
	}
	{ // Zero stiffness reduces the solve to the identity
		eh := NewElementHelmholtz(el, 0, DirectSolve)
		F := evalOnNodes(el, func(x, y float64) float64 { return x - 3.*y })
		U := eh.Solve(1, F)
		assert.InDeltaSlice(t, F.DataP, U.DataP, 1.e-8)
	}
	{ // The Poisson path pins each element mean at zero
		eh := NewElementHelmholtz(el, 1, DirectSolve)
		U := eh.SolvePoisson(evalOnNodes(el, func(x, y float64) float64 { return x + 5. }))
		for k := 0; k < el.K; k++ {
			var mean float64
			Mu := el.MassMatrix.Mul(U.Col(k).ToMatrix())
			for i := 0; i < el.Np; i++ {
				mean += Mu.At(i, 0)
			}
			assert.InDeltaf(t, 0., mean, 1.e-6, "element %d mean", k)
		}
		// Shifting the forcing by a constant changes nothing
		U2 := eh.SolvePoisson(evalOnNodes(el, func(x, y float64) float64 { return x - 11. }))
		assert.InDeltaSlice(t, U.DataP, U2.DataP, 1.e-6)
	}
}
