package IncNS2D

import (
	"fmt"
	"strings"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/utils"
)

type AdvectionType uint

const (
	NoAdvection AdvectionType = iota
	Convective
	Linearised
)

var (
	AdvectionNames = map[string]AdvectionType{
		"noadvection": NoAdvection,
		"convective":  Convective,
		"linearised":  Linearised,
	}
	AdvectionPrintNames = []string{"No Advection", "Convective", "Linearised"}
)

func (at AdvectionType) Print() (txt string) {
	txt = AdvectionPrintNames[at]
	return
}

func NewAdvectionType(label string) (at AdvectionType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if at, ok = AdvectionNames[label]; !ok {
		err = fmt.Errorf("unable to use advection named %s", label)
		panic(err)
	}
	return
}

// AdvectionOperator evaluates the advection term of the transport equations
// at the volume nodes. The linearised form advects by a stored base flow
// instead of the advecting velocity handed in per evaluation
type AdvectionOperator struct {
	El       *DG2D.Elements2D
	Type     AdvectionType
	BaseFlow []utils.Matrix
}

func NewAdvectionOperator(el *DG2D.Elements2D, atype AdvectionType, baseFlow []utils.Matrix) (ao *AdvectionOperator) {
	if atype == Linearised && len(baseFlow) < 2 {
		panic(fmt.Errorf("linearised advection needs a base flow with at least 2 components, have %d", len(baseFlow)))
	}
	ao = &AdvectionOperator{
		El:       el,
		Type:     atype,
		BaseFlow: baseFlow,
	}
	return
}

// AdvectingVelocity returns the velocity the operator advects by, nil when
// the equation set carries no advection
func (ao *AdvectionOperator) AdvectingVelocity(Vadv []utils.Matrix) (vel []utils.Matrix) {
	switch ao.Type {
	case Convective:
		vel = Vadv
	case Linearised:
		vel = ao.BaseFlow
	}
	return
}

// Evaluate computes the advection term with the sign it carries on the right
// hand side,
//	Out_i = -(V . grad) U_i
// at the volume nodes, overwriting Out
func (ao *AdvectionOperator) Evaluate(Vadv, U, Out []utils.Matrix) {
	var (
		el  = ao.El
		vel = ao.AdvectingVelocity(Vadv)
	)
	if vel == nil {
		for i := range Out {
			Out[i].Scale(0)
		}
		return
	}
	for i := range U {
		Ux, Uy := el.PhysDeriv(U[i])
		Ux.ElMul(vel[0]).Add(Uy.ElMul(vel[1])).Scale(-1)
		copy(Out[i].DataP, Ux.DataP)
	}
}

/*
WeakAdvectionRHS applies the weak form advection operator to the fields U,
advected by Vadv, and deposits the physical space right hand side into Out.

The term is assembled in coefficient space. The volume contribution is the
inner product of the pointwise advection term with the basis, negated for the
sign convention of Evaluate. An interface penalty is then accumulated from the
upwind trace flux minus the interior trace, scaled by the normal advecting
velocity and integrated along the faces. A second negation restores the right
hand side sign before the weighted mass inverse returns the term to point
values.
*/
func WeakAdvectionRHS(ao *AdvectionOperator, Vadv, U, Out []utils.Matrix) {
	var (
		el  = ao.El
		vel = ao.AdvectingVelocity(Vadv)
	)
	if vel == nil {
		for i := range Out {
			Out[i].Scale(0)
		}
		return
	}
	ao.Evaluate(Vadv, U, Out)
	fU, _ := el.GetFwdBwdTracePhys(vel[0])
	fV, _ := el.GetFwdBwdTracePhys(vel[1])
	Vn := el.NormalVelocity(fU, fV)
	for i := range U {
		W := el.IProductWRTBase(Out[i])
		W.Scale(-1)
		Fwd, Bwd := el.GetFwdBwdTracePhys(U[i])
		Flx := el.Upwind(Fwd, Bwd, Vn)
		Flx.Subtract(Fwd).ElMul(Vn)
		el.AddTraceIntegral(Flx, W)
		W.Scale(-1)
		F := el.MultiplyByElmtInvMass(W)
		copy(Out[i].DataP, F.DataP)
	}
}
