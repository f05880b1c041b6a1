package IncNS2D

import (
	"fmt"
	"math"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/TimeIntegration"
	"github.com/notargets/incflow/utils"
)

/*
HistoryBuffer keeps the most recent velocity snapshots, slot 0 newest. The
first save replicates into every slot so that extrapolation has a full, if
degenerate, history from the cold start onward. Later saves rotate the slots,
recycling the storage of the oldest.
*/
type HistoryBuffer struct {
	Slots [][]utils.Matrix
	saves int
}

func NewHistoryBuffer(nSlots, nComp, nr, nc int) (hb *HistoryBuffer) {
	hb = &HistoryBuffer{
		Slots: make([][]utils.Matrix, nSlots),
	}
	for m := range hb.Slots {
		hb.Slots[m] = make([]utils.Matrix, nComp)
		for n := range hb.Slots[m] {
			hb.Slots[m][n] = utils.NewMatrix(nr, nc)
		}
	}
	return
}

func (hb *HistoryBuffer) Save(fields []utils.Matrix) {
	if hb.saves == 0 {
		for m := range hb.Slots {
			TimeIntegration.CopyFields(hb.Slots[m], fields)
		}
	} else {
		last := len(hb.Slots) - 1
		newest := hb.Slots[last]
		copy(hb.Slots[1:], hb.Slots[:last])
		hb.Slots[0] = newest
		TimeIntegration.CopyFields(hb.Slots[0], fields)
	}
	hb.saves++
}

func (hb *HistoryBuffer) Saves() int { return hb.saves }

// ExtrapolationWeights returns the Lagrange weights evaluating at time offset
// tau ahead of the newest history node, with the nodes one outer step apart
// behind it,
//	w_i = prod_{j != i} (j dt + tau) / (j dt - i dt)
func ExtrapolationWeights(nLevels int, dt, tau float64) (w []float64) {
	w = make([]float64, nLevels)
	for i := 0; i < nLevels; i++ {
		w[i] = 1
		for j := 0; j < nLevels; j++ {
			if j == i {
				continue
			}
			w[i] *= (float64(j)*dt + tau) / (float64(j)*dt - float64(i)*dt)
		}
	}
	return
}

// Extrapolate evaluates the history at offset tau past the newest save and
// deposits it into Out
func (hb *HistoryBuffer) Extrapolate(dt, tau float64, Out []utils.Matrix) {
	w := ExtrapolationWeights(len(hb.Slots), dt, tau)
	for n := range Out {
		Out[n].Scale(0)
	}
	for m, slot := range hb.Slots {
		for n := range Out {
			oD, sD := Out[n].DataP, slot[n].DataP
			for i := range oD {
				oD[i] += w[m] * sD[i]
			}
		}
	}
}

// SubStepCount splits the outer step into inner steps no larger than the
// stable advective step, honoring the configured floor
func SubStepCount(outerDt, dtInner float64, minSubSteps int) (nsub int, dtSub float64) {
	if outerDt > dtInner {
		nsub = int(math.Ceil(outerDt / dtInner))
	} else {
		nsub = 1
	}
	if nsub < minSubSteps {
		nsub = minSubSteps
	}
	dtSub = outerDt / float64(nsub)
	return
}

/*
SubStep advances the advection part of the outer solution history at its own
explicitly stable step, leaving the outer scheme free to run at a step set by
the viscous scale. Each outer step the engine saves the newest velocity into
its history, measures the stable advective step from it, and re-advances every
live outer history slot through one outer step worth of inner explicit steps.
The advecting velocity during the inner steps is extrapolated in time from the
saved history.
*/
type SubStep struct {
	El          *DG2D.Elements2D
	OuterDt     float64
	SubStepCFL  float64
	MinSubSteps int
	IntOrder    int
	NSub        int
	DtSub       float64
	History     *HistoryBuffer
	Adv         *AdvectionOperator
	Force       *BodyForce
	scheme      *TimeIntegration.Integrator
	inner       *TimeIntegration.Solution
	vExt        []utils.Matrix
	calls       int
}

func NewSubStep(el *DG2D.Elements2D, adv *AdvectionOperator, force *BodyForce,
	outerDt, subStepCFL float64, minSubSteps, intOrder, nComp int) (ss *SubStep) {
	if minSubSteps < 1 {
		minSubSteps = 1
	}
	ss = &SubStep{
		El:          el,
		OuterDt:     outerDt,
		SubStepCFL:  subStepCFL,
		MinSubSteps: minSubSteps,
		IntOrder:    intOrder,
		History:     NewHistoryBuffer(intOrder, nComp, el.Np, el.K),
		Adv:         adv,
		Force:       force,
		scheme:      TimeIntegration.NewIntegrator(TimeIntegration.RK2, 1),
		vExt:        make([]utils.Matrix, nComp),
	}
	for n := range ss.vExt {
		ss.vExt[n] = utils.NewMatrix(el.Np, el.K)
	}
	zero := make([]utils.Matrix, nComp)
	for n := range zero {
		zero[n] = utils.NewMatrix(el.Np, el.K)
	}
	ss.inner = ss.scheme.InitializeScheme(outerDt, zero, 0, subStepOps{ss})
	return
}

// SaveFields records the velocity of the just begun outer step into the
// history and bumps the live slot count
func (ss *SubStep) SaveFields(stepIndex int, Vel []utils.Matrix) {
	ss.History.Save(Vel)
	ss.calls++
}

// ComputeSubStepCount measures the stable advective step from the newest
// saved velocity and sets the inner step split for this outer step
func (ss *SubStep) ComputeSubStepCount() {
	dtInner := StableTimeStep(ss.El, ss.History.Slots[0], ss.SubStepCFL)
	ss.NSub, ss.DtSub = SubStepCount(ss.OuterDt, dtInner, ss.MinSubSteps)
}

/*
Advance re-integrates the advection of every live outer history slot. Slot m
holds the solution m outer steps behind time; it is advanced through one outer
step of nsub explicit inner steps and written back in place, ready for the
outer scheme to combine.
*/
func (ss *SubStep) Advance(stepIndex int, sol *TimeIntegration.Solution, time float64) {
	ss.ComputeSubStepCount()
	nint := ss.calls
	if nint > ss.IntOrder {
		nint = ss.IntOrder
	}
	for m := 0; m < nint; m++ {
		ss.inner.SetSolVector(0, sol.GetSolVector(m))
		ss.inner.Time = time - float64(m)*ss.OuterDt
		var out []utils.Matrix
		for n := 0; n < ss.NSub; n++ {
			out = ss.scheme.TimeIntegrate(ss.DtSub, ss.inner, subStepOps{ss})
		}
		sol.SetSolVector(m, out)
	}
}

// subStepOps is the operator set of the inner explicit scheme. The advecting
// velocity is extrapolated from the history at the offset of the inner time
// within its outer step
type subStepOps struct {
	ss *SubStep
}

func (so subStepOps) OdeRHS(in, out []utils.Matrix, time float64) {
	var (
		ss  = so.ss
		tau = math.Mod(time, ss.OuterDt)
	)
	ss.History.Extrapolate(ss.OuterDt, tau, ss.vExt)
	WeakAdvectionRHS(ss.Adv, ss.vExt, in, out)
	ss.Force.AddTo(out)
}

func (so subStepOps) ImplicitSolve(in, out []utils.Matrix, time, lambda float64) {
	// The inner schemes are explicit, only the projection is ever requested
	if lambda != 0 {
		panic(fmt.Errorf("sub step integration is explicit, have implicit weight %g", lambda))
	}
	TimeIntegration.CopyFields(out, in)
}
