package IncNS2D

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/utils"
)

func TestHomoOperators(t *testing.T) {
	var (
		el     = testElements(2)
		hom    = DG2D.NewHomogeneous1D(el, 4, 2.)
		NZ     = hom.NZ
		kinvis = 0.1
		lambda = 0.1
	)
	mkState := func() (U []utils.Matrix) {
		U = make([]utils.Matrix, 3*NZ)
		for n := range U {
			U[n] = utils.NewMatrix(el.Np, el.K)
		}
		return
	}
	ho := NewHomoOperators(el, hom, kinvis, Convective, nil, DirectSolve)
	{ // A projection weight of zero is a copy
		in, out := mkState(), mkState()
		in[0].AddScalar(3)
		ho.ImplicitSolve(in, out, 0, 0)
		assert.InDeltaSlice(t, in[0].DataP, out[0].DataP, 1.e-12)
	}
	{ // The z mean of a uniform state rides through the solve unchanged
		in, out := mkState(), mkState()
		in[0].AddScalar(3)
		ho.ImplicitSolve(in, out, 0, lambda)
		assert.InDeltaSlice(t, in[0].DataP, out[0].DataP, 1.e-8)
		for z := 0; z < NZ; z++ {
			for i, v := range ho.Pressure.Planes[z].DataP {
				assert.InDeltaf(t, 0., v, 1.e-8, "pressure plane %d point %d", z, i)
			}
		}
	}
	{ // A pure z wave decays by the wavenumber shifted mass factor
		in, out := mkState(), mkState()
		in[2].AddScalar(2) // u, first mode, real part
		ho.ImplicitSolve(in, out, 0, lambda)
		beta := hom.Beta(1)
		want := 2. / (1. + lambda*kinvis*beta*beta)
		for i, v := range out[2].DataP {
			assert.InDeltaf(t, want, v, 1.e-8, "first mode at point %d", i)
		}
		// Nothing leaks into the other planes or components
		for i, v := range out[3].DataP {
			assert.InDeltaf(t, 0., v, 1.e-10, "imaginary plane at point %d", i)
		}
		for i, v := range out[NZ+2].DataP {
			assert.InDeltaf(t, 0., v, 1.e-10, "v first mode at point %d", i)
		}
	}
	{ // A quiescent state has a quiet right hand side
		in, out := mkState(), mkState()
		ho.OdeRHS(in, out, 0)
		for n := range out {
			for i, v := range out[n].DataP {
				assert.InDeltaf(t, 0., v, 1.e-12, "plane %d point %d", n, i)
			}
		}
	}
	{ // The z transport carries a w advected cosine into the sine mode
		in, out := mkState(), mkState()
		in[2].AddScalar(0.5)              // u(z) = cos(pi z)
		in[2*NZ].AddScalar(0.4)           // w = 0.4
		ho.OdeRHS(in, out, 0)
		beta := hom.Beta(1)
		// -w du/dz = 0.4 pi sin(pi z), landing in the imaginary plane
		want := -0.4 * beta * 0.5
		for i, v := range out[3].DataP {
			assert.InDeltaf(t, want, v, 1.e-10, "u imaginary plane at point %d", i)
		}
		for _, n := range []int{0, 1, 2} {
			for i, v := range out[NZ+n].DataP {
				assert.InDeltaf(t, 0., v, 1.e-10, "v plane %d point %d", n, i)
			}
		}
		for z := 0; z < NZ; z++ {
			for i, v := range out[2*NZ+z].DataP {
				assert.InDeltaf(t, 0., v, 1.e-10, "w plane %d point %d", z, i)
			}
		}
	}
	{ // A constant force enters the mean mode in wave space
		hf := NewHomoOperators(el, hom, kinvis, Convective,
			NewBodyForce([]float64{0, 0, 1.5}, hom, 3), DirectSolve)
		in, out := mkState(), mkState()
		hf.OdeRHS(in, out, 0)
		for i, v := range out[2*NZ].DataP {
			assert.InDeltaf(t, 1.5, v, 1.e-10, "w mean mode at point %d", i)
		}
		for i, v := range out[2*NZ+2].DataP {
			assert.InDeltaf(t, 0., v, 1.e-10, "w first mode at point %d", i)
		}
	}
}
