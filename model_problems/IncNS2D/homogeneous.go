package IncNS2D

import (
	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/TimeIntegration"
	"github.com/notargets/incflow/utils"
)

/*
HomoOperators is the operator set of a homogeneous run. The integrator state
holds the wave space planes of the three velocity components flattened
component major, entry c*NZ+z carrying plane z of component c, so the
multistep history and the mode pairs live in the same storage.

The advection term is evaluated pseudo spectrally. Each call returns the
state to physical planes, runs the planar weak advection pipeline per plane
with the z transport added pointwise from a spectral z derivative, and
transforms the result back to wave space. The implicit step stays in wave
space, where the modes decouple and each solves a planar Helmholtz problem
with its mass coefficient shifted by the squared z wavenumber.
*/
type HomoOperators struct {
	El       *DG2D.Elements2D
	Hom      *DG2D.Homogeneous1D
	NComp    int
	Kinvis   float64
	Adv      *AdvectionOperator
	Force    *BodyForce
	Pressure *DG2D.HomoField
	HelmV    *ElementHelmholtz
	HelmP    *ElementHelmholtz
	phys     []*DG2D.HomoField
	dz       []*DG2D.HomoField
	rhs      []*DG2D.HomoField
}

func NewHomoOperators(el *DG2D.Elements2D, hom *DG2D.Homogeneous1D,
	kinvis float64, atype AdvectionType, force *BodyForce,
	soln GlobalSysType) (ho *HomoOperators) {
	ho = &HomoOperators{
		El:       el,
		Hom:      hom,
		NComp:    3,
		Kinvis:   kinvis,
		Adv:      NewAdvectionOperator(el, atype, nil),
		Force:    force,
		Pressure: hom.NewHomoField("p"),
		HelmV:    NewElementHelmholtz(el, kinvis, soln),
		HelmP:    NewElementHelmholtz(el, 1, soln),
	}
	ho.Pressure.WaveSpace = true
	names := []string{"u", "v", "w"}
	for c := 0; c < ho.NComp; c++ {
		ho.phys = append(ho.phys, hom.NewHomoField(names[c]))
		ho.dz = append(ho.dz, hom.NewHomoField(names[c]+"z"))
		ho.rhs = append(ho.rhs, hom.NewHomoField(names[c]+"rhs"))
	}
	return
}

func (ho *HomoOperators) index(c, z int) int { return c*ho.Hom.NZ + z }

func (ho *HomoOperators) OdeRHS(in, out []utils.Matrix, time float64) {
	var (
		hom = ho.Hom
		NZ  = hom.NZ
	)
	// Return the state to physical planes and take the spectral z derivative
	// on the way, mode m mapping (re, im) to (-beta im, +beta re)
	for c := 0; c < ho.NComp; c++ {
		var (
			fld = ho.phys[c]
			dzf = ho.dz[c]
		)
		for z := 0; z < NZ; z++ {
			copy(fld.Planes[z].DataP, in[ho.index(c, z)].DataP)
		}
		for m := 0; m < hom.NumModes(); m++ {
			var (
				beta   = hom.Beta(m)
				re, im = in[ho.index(c, 2*m)].DataP, in[ho.index(c, 2*m+1)].DataP
				dRe    = dzf.Planes[2*m].DataP
				dIm    = dzf.Planes[2*m+1].DataP
			)
			for i := range re {
				dRe[i] = -beta * im[i]
				dIm[i] = beta * re[i]
			}
		}
		fld.WaveSpace = true
		dzf.WaveSpace = true
		fld.HomogeneousBwdTrans()
		dzf.HomogeneousBwdTrans()
	}
	// Planar advection per plane, then the z transport of each component
	for c := 0; c < ho.NComp; c++ {
		ho.rhs[c].WaveSpace = false
	}
	U := make([]utils.Matrix, ho.NComp)
	R := make([]utils.Matrix, ho.NComp)
	for z := 0; z < NZ; z++ {
		vel := []utils.Matrix{ho.phys[0].Planes[z], ho.phys[1].Planes[z]}
		for c := 0; c < ho.NComp; c++ {
			U[c] = ho.phys[c].Planes[z]
			R[c] = ho.rhs[c].Planes[z]
		}
		WeakAdvectionRHS(ho.Adv, vel, U, R)
		if ho.Adv.Type == Convective {
			w := ho.phys[2].Planes[z].DataP
			for c := 0; c < ho.NComp; c++ {
				var (
					rp  = R[c].DataP
					dzp = ho.dz[c].Planes[z].DataP
				)
				for i := range rp {
					rp[i] -= w[i] * dzp[i]
				}
			}
		}
	}
	for c := 0; c < ho.NComp; c++ {
		ho.rhs[c].HomogeneousFwdTrans()
		for z := 0; z < NZ; z++ {
			copy(out[ho.index(c, z)].DataP, ho.rhs[c].Planes[z].DataP)
		}
	}
	if ho.Force != nil {
		ho.Force.AddToWave(out, NZ)
	}
}

func (ho *HomoOperators) ImplicitSolve(in, out []utils.Matrix, time, lambda float64) {
	if lambda == 0 {
		TimeIntegration.CopyFields(out, in)
		return
	}
	var (
		el  = ho.El
		hom = ho.Hom
		nu  = ho.Kinvis
	)
	for m := 0; m < hom.NumModes(); m++ {
		var (
			beta   = hom.Beta(m)
			re, im = 2 * m, 2*m + 1
		)
		// Divergence of the uncorrected state for this mode, the z part
		// entering spectrally
		uxr, _ := el.PhysDeriv(in[ho.index(0, re)])
		_, vyr := el.PhysDeriv(in[ho.index(1, re)])
		uxi, _ := el.PhysDeriv(in[ho.index(0, im)])
		_, vyi := el.PhysDeriv(in[ho.index(1, im)])
		var (
			divRe = uxr.Add(vyr)
			divIm = uxi.Add(vyi)
			wRe   = in[ho.index(2, re)].DataP
			wIm   = in[ho.index(2, im)].DataP
		)
		for i := range divRe.DataP {
			divRe.DataP[i] -= beta * wIm[i]
			divIm.DataP[i] += beta * wRe[i]
		}
		// Pressure for this mode. The mean mode is singular and goes through
		// the pinned Poisson path
		var pRe, pIm utils.Matrix
		FRe := divRe.Scale(-1 / lambda)
		FIm := divIm.Scale(-1 / lambda)
		if m == 0 {
			pRe = ho.HelmP.SolvePoisson(FRe)
			pIm = ho.HelmP.SolvePoisson(FIm)
		} else {
			pRe = ho.HelmP.Solve(beta*beta, FRe)
			pIm = ho.HelmP.Solve(beta*beta, FIm)
		}
		copy(ho.Pressure.Planes[re].DataP, pRe.DataP)
		copy(ho.Pressure.Planes[im].DataP, pIm.DataP)
		// Pressure gradient, spectral in z
		pxr, pyr := el.PhysDeriv(pRe)
		pxi, pyi := el.PhysDeriv(pIm)
		var (
			gradRe    = []utils.Matrix{pxr, pyr, pIm.Copy().Scale(-beta)}
			gradIm    = []utils.Matrix{pxi, pyi, pRe.Copy().Scale(beta)}
			massCoeff = 1/lambda + nu*beta*beta
		)
		for c := 0; c < ho.NComp; c++ {
			Ur := in[ho.index(c, re)].Copy().Subtract(gradRe[c].Scale(lambda)).Scale(1 / lambda)
			Ui := in[ho.index(c, im)].Copy().Subtract(gradIm[c].Scale(lambda)).Scale(1 / lambda)
			copy(out[ho.index(c, re)].DataP, ho.HelmV.Solve(massCoeff, Ur).DataP)
			copy(out[ho.index(c, im)].DataP, ho.HelmV.Solve(massCoeff, Ui).DataP)
		}
	}
	ho.Pressure.WaveSpace = true
}
