package DG2D

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incflow/utils"
)

// evalOnNodes fills an Np x K matrix with f evaluated at the mesh nodes
func evalOnNodes(el *Elements2D, f func(x, y float64) float64) (U utils.Matrix) {
	U = utils.NewMatrix(el.Np, el.K)
	for k := 0; k < el.K; k++ {
		for i := 0; i < el.Np; i++ {
			U.Set(i, k, f(el.X.At(i, k), el.Y.At(i, k)))
		}
	}
	return
}

func TestFieldOperators(t *testing.T) {
	el := unitSquareElements(2)
	{ // Forward and backward transforms invert each other on polynomials
		U := evalOnNodes(el, func(x, y float64) float64 { return 1. + x + y + x*y })
		U2 := el.BwdTrans(el.FwdTrans(U))
		assert.InDeltaSlice(t, U.DataP, U2.DataP, 0.00000001)
	}
	{ // MultiplyByElmtInvMass inverts IProductWRTBase
		U := evalOnNodes(el, func(x, y float64) float64 { return x*x - 2.*y })
		U2 := el.MultiplyByElmtInvMass(el.IProductWRTBase(U))
		assert.InDeltaSlice(t, U.DataP, U2.DataP, 0.00000001)
	}
	{ // Quadrature over the unit square is exact for the element order
		ones := evalOnNodes(el, func(x, y float64) float64 { return 1. })
		assert.InDelta(t, 1., el.Integrate(ones), 0.00000001)
		X := evalOnNodes(el, func(x, y float64) float64 { return x })
		assert.InDelta(t, 0.5, el.Integrate(X), 0.00000001)
		XY := evalOnNodes(el, func(x, y float64) float64 { return x * y })
		assert.InDelta(t, 0.25, el.Integrate(XY), 0.00000001)
		X2 := evalOnNodes(el, func(x, y float64) float64 { return x * x })
		assert.InDelta(t, 1./3., el.Integrate(X2), 0.00000001)
	}
	{ // Physical derivatives are exact for polynomials of the element order
		U := evalOnNodes(el, func(x, y float64) float64 { return x*x + x*y })
		Ux, Uy := el.PhysDeriv(U)
		UxExp := evalOnNodes(el, func(x, y float64) float64 { return 2.*x + y })
		UyExp := evalOnNodes(el, func(x, y float64) float64 { return x })
		assert.InDeltaSlice(t, UxExp.DataP, Ux.DataP, 0.00000001)
		assert.InDeltaSlice(t, UyExp.DataP, Uy.DataP, 0.00000001)
	}
	{ // Both trace sides agree for continuous data
		Fwd, Bwd := el.GetFwdBwdTracePhys(el.X)
		assert.InDeltaSlice(t, Fwd.DataP, Bwd.DataP, 0.00000001)
		// The trace of the coordinate field is the face coordinates
		assert.InDeltaSlice(t, el.Fx.DataP, Fwd.DataP, 0.00000001)
	}
	{ // Upwind picks the interior value on outflow, the neighbor on inflow
		NFacePts := el.Nfp * el.NFaces
		Fwd := utils.NewMatrix(NFacePts, el.K).AddScalar(1)
		Bwd := utils.NewMatrix(NFacePts, el.K).AddScalar(2)
		// Unit velocity in x makes Vn equal to NX on the trace
		UT := utils.NewMatrix(NFacePts, el.K).AddScalar(1)
		VT := utils.NewMatrix(NFacePts, el.K)
		Vn := el.NormalVelocity(UT, VT)
		assert.InDeltaSlice(t, el.NX.DataP, Vn.DataP, 0.00000001)
		Flx := el.Upwind(Fwd, Bwd, Vn)
		for i, vn := range Vn.DataP {
			if vn < 0 {
				assert.InDeltaf(t, 2., Flx.DataP[i], 0.00000001, "inflow trace point %d", i)
			} else {
				assert.InDeltaf(t, 1., Flx.DataP[i], 0.00000001, "outflow trace point %d", i)
			}
		}
		// Upwind leaves its arguments alone
		assert.InDelta(t, 1., Fwd.DataP[0], 0.00000001)
		assert.InDelta(t, 2., Bwd.DataP[0], 0.00000001)
	}
	{ // Trace integral then inverse mass equals the strong form LIFT
		NFacePts := el.Nfp * el.NFaces
		Flx := utils.NewMatrix(NFacePts, el.K)
		for i := range Flx.DataP {
			Flx.DataP[i] = float64(i%7) - 3.
		}
		Out := utils.NewMatrix(el.Np, el.K)
		el.AddTraceIntegral(Flx, Out)
		R1 := el.MultiplyByElmtInvMass(Out)
		R2 := el.LIFT.Mul(el.FScale.Copy().ElMul(Flx))
		assert.InDeltaSlice(t, R2.DataP, R1.DataP, 0.00000001)
	}
	{ // The normals integrate to zero around each closed element surface
		Out := utils.NewMatrix(el.Np, el.K)
		el.AddTraceIntegral(el.NX, Out)
		for k := 0; k < el.K; k++ {
			var sum float64
			for i := 0; i < el.Np; i++ {
				sum += Out.At(i, k)
			}
			assert.InDeltaf(t, 0., sum, 0.00000001, "open surface on element %d", k)
		}
	}
}

func TestFieldState(t *testing.T) {
	el := unitSquareElements(2)
	{ // A new field starts with valid point values and stale coefficients
		fld := NewField(el, "u")
		assert.Equal(t, el.K, fld.GetNelements())
		assert.Equal(t, el.Np*el.K, fld.GetNpoints())
		assert.True(t, fld.PhysState())
		assert.NotPanics(t, func() { fld.GetPhys() })
		assert.Panics(t, func() { fld.GetCoeffs() })
	}
	{ // Transforms refresh the stale side
		fld := NewField(el, "u")
		fld.SetPhys(evalOnNodes(el, func(x, y float64) float64 { return x + 2.*y }))
		fld.FwdTrans()
		assert.NotPanics(t, func() { fld.GetCoeffs() })
		// Writing coefficients invalidates the point values
		fld.UpdateCoeffs()
		assert.Panics(t, func() { fld.GetPhys() })
		fld.BwdTrans()
		assert.InDeltaf(t, el.X.At(0, 0)+2.*el.Y.At(0, 0), fld.GetPhys().At(0, 0),
			0.00000001, "round trip point value")
	}
	{ // The coefficient norm sums the squared coefficients
		fld := NewField(el, "u")
		Uhat := fld.UpdateCoeffs()
		var expect float64
		for i := range Uhat.DataP {
			Uhat.DataP[i] = float64(i) * 0.5
			expect += Uhat.DataP[i] * Uhat.DataP[i]
		}
		assert.InDelta(t, expect, fld.CoeffsNormSq(), 0.00000001)
	}
	{ // Field traces delegate to the element trace extraction
		fld := NewField(el, "u")
		fld.SetPhys(el.Y.Copy())
		Fwd, Bwd := fld.GetFwdBwdTracePhys()
		assert.InDeltaSlice(t, Fwd.DataP, Bwd.DataP, 0.00000001)
		assert.InDeltaSlice(t, el.Fy.DataP, Fwd.DataP, 0.00000001)
	}
}
