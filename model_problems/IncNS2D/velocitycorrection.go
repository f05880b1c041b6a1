package IncNS2D

import (
	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/TimeIntegration"
	"github.com/notargets/incflow/utils"
)

/*
VelocityCorrection is the operator pair of the primary velocity group under
the splitting scheme. The explicit side evaluates advection and forcing at the
volume nodes. The implicit side absorbs pressure and viscosity, solving

	out - lambda (Kinvis Lap(out) - grad p) = in,  div(out) = 0

by first recovering the pressure from a Poisson problem forced by div(in),
then solving one Helmholtz problem per velocity component on the pressure
corrected state. The pressure lands in the session pressure field as a side
effect of each implicit solve.
*/
type VelocityCorrection struct {
	El       *DG2D.Elements2D
	Kinvis   float64
	Adv      *AdvectionOperator
	Force    *BodyForce
	Pressure *DG2D.Field
	HelmV    *ElementHelmholtz
	HelmP    *ElementHelmholtz
	// StressForce accumulates the divergence of a transported polymer
	// stress onto the momentum right hand side when a viscoelastic model
	// is active
	StressForce func(Out []utils.Matrix)
}

func NewVelocityCorrection(el *DG2D.Elements2D, kinvis float64, adv *AdvectionOperator,
	force *BodyForce, pressure *DG2D.Field, soln GlobalSysType) (vc *VelocityCorrection) {
	vc = &VelocityCorrection{
		El:       el,
		Kinvis:   kinvis,
		Adv:      adv,
		Force:    force,
		Pressure: pressure,
		HelmV:    NewElementHelmholtz(el, kinvis, soln),
		HelmP:    NewElementHelmholtz(el, 1, soln),
	}
	return
}

func (vc *VelocityCorrection) OdeRHS(in, out []utils.Matrix, time float64) {
	WeakAdvectionRHS(vc.Adv, in, in, out)
	vc.Force.AddTo(out)
	if vc.StressForce != nil {
		vc.StressForce(out)
	}
}

func (vc *VelocityCorrection) ImplicitSolve(in, out []utils.Matrix, time, lambda float64) {
	if lambda == 0 {
		TimeIntegration.CopyFields(out, in)
		return
	}
	var (
		el = vc.El
	)
	// Pressure Poisson, forced by the divergence of the uncorrected state.
	// The stiffness operator carries the negative Laplacian, so the forcing
	// enters with its sign flipped
	dudx, _ := el.PhysDeriv(in[0])
	_, dvdy := el.PhysDeriv(in[1])
	Fp := dudx.Add(dvdy).Scale(-1 / lambda)
	P := vc.HelmP.SolvePoisson(Fp)
	vc.Pressure.SetPhys(P)
	// Helmholtz solve on the pressure corrected state, per component
	Px, Py := el.PhysDeriv(P)
	grad := []utils.Matrix{Px, Py}
	for i := range in {
		Ustar := in[i].Copy().Subtract(grad[i].Scale(lambda)).Scale(1 / lambda)
		copy(out[i].DataP, vc.HelmV.Solve(1/lambda, Ustar).DataP)
	}
}
