package DG2D

import (
	"fmt"

	"github.com/notargets/incflow/utils"
)

// LagrangeElement2D is the nodal reference element on the standard triangle,
// holding the modal transform matrices and the strong differentiation
// matrices used by every element in a mesh
type LagrangeElement2D struct {
	N, Nfp, Np, NFaces  int
	R, S                utils.Vector
	Dr, Ds              utils.Matrix
	V, Vinv, MassMatrix utils.Matrix
	MassInv             utils.Matrix
}

func NewLagrangeElement2D(N int) (el *LagrangeElement2D) {
	if N < 1 {
		panic(fmt.Errorf("polynomial order must be at least 1, have %d", N))
	}
	el = &LagrangeElement2D{
		N:      N,
		Nfp:    N + 1,
		Np:     (N + 1) * (N + 2) / 2,
		NFaces: 3,
	}
	// Warp and blend nodal set on the reference triangle
	el.R, el.S = XYtoRS(Nodes2D(el.N))
	// Modal basis, mass and derivative operators over that set
	el.V = Vandermonde2D(el.N, el.R, el.S)
	el.Vinv = el.V.InverseWithCheck()
	el.MassMatrix = el.Vinv.Transpose().Mul(el.Vinv)
	el.MassInv = el.V.Mul(el.V.Transpose())
	el.Dr, el.Ds = el.GetDerivativeMatrices(el.R, el.S)
	// The reference operators never change after this point
	el.V.SetReadOnly("V")
	el.Vinv.SetReadOnly("Vinv")
	el.MassMatrix.SetReadOnly("MassMatrix")
	el.MassInv.SetReadOnly("MassInv")
	el.Dr.SetReadOnly("Dr")
	el.Ds.SetReadOnly("Ds")
	return
}

func (el *LagrangeElement2D) GetDerivativeMatrices(R, S utils.Vector) (Dr, Ds utils.Matrix) {
	Vr, Vs := GradVandermonde2D(el.N, R, S)
	Dr, Ds = Vr.Mul(el.Vinv), Vs.Mul(el.Vinv)
	return
}

// InterpolationMatrix composes a matrix of interpolating polynomials where
// each row represents one [r,s] location to be interpolated. Multiplying it
// by a vector of function values at the element nodes produces interpolated
// values, one per location
func (el *LagrangeElement2D) InterpolationMatrix(R, S utils.Vector) (IM utils.Matrix) {
	IM = Vandermonde2D(el.N, R, S).Mul(el.Vinv)
	return
}
