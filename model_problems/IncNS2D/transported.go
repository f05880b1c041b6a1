package IncNS2D

import (
	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/TimeIntegration"
	"github.com/notargets/incflow/utils"
)

/*
TransportedGroup advances a set of secondary fields alongside the primary
velocity, carried by the velocity but not part of the implicit velocity
correction. Each group owns its integrator and history, advancing one step
before the primary each outer step with the newest velocity as the advecting
field. Scalar groups close with an implicit diffusion solve, the polymer
stress group with an implicit relaxation, both entered through the same
operator interface as the primary.
*/
type TransportedGroup struct {
	El          *DG2D.Elements2D
	Names       []string
	FieldIdx    []int
	Adv         *AdvectionOperator
	Diffusivity float64
	RelaxTime   float64
	Helm        *ElementHelmholtz
	Source      func(Vel, in, out []utils.Matrix)
	integ       *TimeIntegration.Integrator
	sol         *TimeIntegration.Solution
	vel         []utils.Matrix
}

func NewTransportedGroup(el *DG2D.Elements2D, names []string, fieldIdx []int,
	atype AdvectionType, baseFlow []utils.Matrix, diffusivity float64,
	order int, soln GlobalSysType, dt float64, U0 []utils.Matrix) (tg *TransportedGroup) {
	tg = &TransportedGroup{
		El:          el,
		Names:       names,
		FieldIdx:    fieldIdx,
		Adv:         NewAdvectionOperator(el, atype, baseFlow),
		Diffusivity: diffusivity,
		integ:       TimeIntegration.NewIntegrator(TimeIntegration.IMEX, order),
	}
	if diffusivity > 0 {
		tg.Helm = NewElementHelmholtz(el, diffusivity, soln)
	}
	tg.sol = tg.integ.InitializeScheme(dt, U0, 0, transportedOps{tg})
	return
}

/*
NewStressGroup builds the transported group of the polymer stress components
(txx, txy, tyy) of a viscoelastic model. The upper convected stretch terms and
the model specific quadratic enter explicitly through the source, the stiff
relaxation implicitly through the operator set.
*/
func NewStressGroup(el *DG2D.Elements2D, names []string, fieldIdx []int,
	model ViscModelType, relaxTime, polymerVisc, mobility float64,
	order int, dt float64, U0 []utils.Matrix) (tg *TransportedGroup) {
	tg = &TransportedGroup{
		El:        el,
		Names:     names,
		FieldIdx:  fieldIdx,
		Adv:       NewAdvectionOperator(el, Convective, nil),
		RelaxTime: relaxTime,
		integ:     TimeIntegration.NewIntegrator(TimeIntegration.IMEX, order),
	}
	coef := polymerVisc / relaxTime
	tg.Source = func(Vel, in, out []utils.Matrix) {
		ux, uy := el.PhysDeriv(Vel[0])
		vx, vy := el.PhysDeriv(Vel[1])
		var (
			txx, txy, tyy = in[0].DataP, in[1].DataP, in[2].DataP
			oxx, oxy, oyy = out[0].DataP, out[1].DataP, out[2].DataP
		)
		// Upper convected stretch, (grad v) tau + tau (grad v)^T, plus the
		// polymer forcing on the rate of strain
		for i := range oxx {
			oxx[i] += 2*(ux.DataP[i]*txx[i]+uy.DataP[i]*txy[i]) + 2*coef*ux.DataP[i]
			oxy[i] += ux.DataP[i]*txy[i] + uy.DataP[i]*tyy[i] +
				vx.DataP[i]*txx[i] + vy.DataP[i]*txy[i] +
				coef*(uy.DataP[i]+vx.DataP[i])
			oyy[i] += 2*(vx.DataP[i]*txy[i]+vy.DataP[i]*tyy[i]) + 2*coef*vy.DataP[i]
		}
		if model == Giesekus {
			q := mobility / polymerVisc
			for i := range oxx {
				oxx[i] -= q * (txx[i]*txx[i] + txy[i]*txy[i])
				oxy[i] -= q * txy[i] * (txx[i] + tyy[i])
				oyy[i] -= q * (txy[i]*txy[i] + tyy[i]*tyy[i])
			}
		}
	}
	tg.sol = tg.integ.InitializeScheme(dt, U0, 0, transportedOps{tg})
	return
}

// Advance steps the group once with Vel as the advecting velocity and returns
// the new state, phys space, aliased to the newest history slot
func (tg *TransportedGroup) Advance(dt float64, Vel []utils.Matrix) (out []utils.Matrix) {
	tg.vel = Vel
	out = tg.integ.TimeIntegrate(dt, tg.sol, transportedOps{tg})
	return
}

// StressForce returns the accumulator adding the divergence of the newest
// stress state onto the momentum right hand side
func (tg *TransportedGroup) StressForce() func(Out []utils.Matrix) {
	return func(Out []utils.Matrix) {
		var (
			el = tg.El
			S  = tg.sol.GetSolVector(0)
		)
		sxx_x, _ := el.PhysDeriv(S[0])
		sxy_x, sxy_y := el.PhysDeriv(S[1])
		_, syy_y := el.PhysDeriv(S[2])
		Out[0].Add(sxx_x).Add(sxy_y)
		Out[1].Add(sxy_x).Add(syy_y)
	}
}

type transportedOps struct {
	tg *TransportedGroup
}

func (to transportedOps) OdeRHS(in, out []utils.Matrix, time float64) {
	var (
		tg = to.tg
	)
	WeakAdvectionRHS(tg.Adv, tg.vel, in, out)
	if tg.Source != nil {
		tg.Source(tg.vel, in, out)
	}
}

func (to transportedOps) ImplicitSolve(in, out []utils.Matrix, time, lambda float64) {
	var (
		tg = to.tg
	)
	switch {
	case lambda == 0:
		TimeIntegration.CopyFields(out, in)
	case tg.RelaxTime > 0:
		// Pointwise implicit relaxation, out + lambda out / relaxTime = in
		fac := 1 / (1 + lambda/tg.RelaxTime)
		for n := range in {
			for i, v := range in[n].DataP {
				out[n].DataP[i] = fac * v
			}
		}
	case tg.Helm != nil:
		for n := range in {
			rhs := in[n].Copy().Scale(1 / lambda)
			copy(out[n].DataP, tg.Helm.Solve(1/lambda, rhs).DataP)
		}
	default:
		TimeIntegration.CopyFields(out, in)
	}
}
