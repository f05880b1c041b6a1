package IncNS2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incflow/utils"
)

func TestAdvectionOperator(t *testing.T) {
	el := testElements(2)
	V := []utils.Matrix{
		utils.NewMatrix(el.Np, el.K).AddScalar(1),
		utils.NewMatrix(el.Np, el.K).AddScalar(2),
	}
	U := []utils.Matrix{evalOnNodes(el, func(x, y float64) float64 { return x + y*y })}
	want := evalOnNodes(el, func(x, y float64) float64 { return -(1. + 4.*y) })
	{ // Advection labels resolve case insensitively
		assert.Equal(t, Convective, NewAdvectionType("Convective"))
		assert.Equal(t, NoAdvection, NewAdvectionType("noadvection"))
		assert.Equal(t, Linearised, NewAdvectionType("Linearised"))
		assert.Panics(t, func() { NewAdvectionType("upwind") })
	}
	{ // Pointwise advection is exact on polynomials of the element order
		adv := NewAdvectionOperator(el, Convective, nil)
		Out := []utils.Matrix{utils.NewMatrix(el.Np, el.K)}
		adv.Evaluate(V, U, Out)
		assert.InDeltaSlice(t, want.DataP, Out[0].DataP, 1.e-8)
	}
	{ // The weak form matches pointwise advection on continuous data
		adv := NewAdvectionOperator(el, Convective, nil)
		Out := []utils.Matrix{utils.NewMatrix(el.Np, el.K)}
		WeakAdvectionRHS(adv, V, U, Out)
		assert.InDeltaSlice(t, want.DataP, Out[0].DataP, 1.e-8)
	}
	{ // Upwinding charges the trace jump to the inflow side only
		adv := NewAdvectionOperator(el, Convective, nil)
		// One value per element makes a jump across the shared diagonal
		Uj := []utils.Matrix{utils.NewMatrix(el.Np, el.K)}
		for i := 0; i < el.Np; i++ {
			Uj[0].Set(i, 1, 1.)
		}
		Out := []utils.Matrix{utils.NewMatrix(el.Np, el.K)}
		WeakAdvectionRHS(adv, V, Uj, Out)
		var mag0, mag1 float64
		for i := 0; i < el.Np; i++ {
			mag0 = math.Max(mag0, math.Abs(Out[0].At(i, 0)))
			mag1 = math.Max(mag1, math.Abs(Out[0].At(i, 1)))
		}
		// The flow crosses the diagonal from element 0 into element 1
		assert.InDelta(t, 0., mag0, 1.e-10)
		assert.Greater(t, mag1, 0.01)
	}
	{ // The linearised form advects by the stored base flow
		adv := NewAdvectionOperator(el, Linearised, V)
		Out := []utils.Matrix{utils.NewMatrix(el.Np, el.K)}
		zeroVel := []utils.Matrix{utils.NewMatrix(el.Np, el.K), utils.NewMatrix(el.Np, el.K)}
		adv.Evaluate(zeroVel, U, Out)
		assert.InDeltaSlice(t, want.DataP, Out[0].DataP, 1.e-8)
	}
	{ // No advection leaves a clean zero
		adv := NewAdvectionOperator(el, NoAdvection, nil)
		Out := []utils.Matrix{utils.NewMatrix(el.Np, el.K).AddScalar(7)}
		WeakAdvectionRHS(adv, V, U, Out)
		for i, v := range Out[0].DataP {
			assert.InDeltaf(t, 0., v, 1.e-12, "point %d", i)
		}
	}
	{ // A linearised operator requires its base flow
		assert.Panics(t, func() { NewAdvectionOperator(el, Linearised, nil) })
	}
}
