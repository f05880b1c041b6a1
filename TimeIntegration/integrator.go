package TimeIntegration

import (
	"fmt"

	"github.com/notargets/incflow/utils"
)

// Scheme selects the time integration family
type Scheme uint8

const (
	IMEX Scheme = iota // stiffly stable implicit-explicit multistep
	ForwardEuler
	RK2 // improved Euler
)

func (s Scheme) String() string {
	switch s {
	case IMEX:
		return "IMEX"
	case ForwardEuler:
		return "ForwardEuler"
	case RK2:
		return "RK2"
	}
	return fmt.Sprintf("Scheme(%d)", uint8(s))
}

/*
Operators pairs the two capabilities a scheme needs from a field group. OdeRHS
evaluates the explicit right hand side of the group at the given time.
ImplicitSolve solves the backward relation

	out - lambda L(out) = in

for the group's stiff operator L. A lambda of zero reduces the solve to the
group's projection, a plain copy when the group has none, which is how the
explicit schemes and initialization use it.
*/
type Operators interface {
	OdeRHS(in, out []utils.Matrix, time float64)
	ImplicitSolve(in, out []utils.Matrix, time, lambda float64)
}

// Stiffly stable scheme coefficients per order, index 0 unused
var (
	gammaIMEX = [4]float64{0, 1, 3. / 2., 11. / 6.}
	alphaIMEX = [4][]float64{nil, {1}, {2, -1. / 2.}, {3, -3. / 2., 1. / 3.}}
	betaIMEX  = [4][]float64{nil, {1}, {2, -1}, {3, -3, 1}}
)

type Integrator struct {
	Scheme Scheme
	Order  int
}

func NewIntegrator(scheme Scheme, order int) (it *Integrator) {
	switch scheme {
	case IMEX:
		if order < 1 || order > 3 {
			panic(fmt.Errorf("IMEX integration order must be 1, 2 or 3, have %d", order))
		}
	case ForwardEuler, RK2:
		// Single step schemes carry one history slot
		order = 1
	default:
		panic(fmt.Errorf("unknown time integration scheme %d", scheme))
	}
	it = &Integrator{
		Scheme: scheme,
		Order:  order,
	}
	return
}

/*
Solution carries the multistep state of one field group between calls to
TimeIntegrate. U holds the solution history and Udot the matching explicit
right hand side evaluations, slot 0 newest, older slots shifted up. The
completed step count drives the start up order ramp, so a cold start needs no
history priming.
*/
type Solution struct {
	Time        float64
	Dt          float64
	U, Udot     [][]utils.Matrix
	work, stage []utils.Matrix
	completed   int
}

// InitializeScheme allocates the multistep state for one field group, sized
// by the initial state U0, which enters the newest solution slot through the
// group's projection
func (it *Integrator) InitializeScheme(dt float64, U0 []utils.Matrix, t0 float64, ops Operators) (sol *Solution) {
	if len(U0) == 0 {
		panic(fmt.Errorf("unable to initialize a %s scheme with no fields", it.Scheme))
	}
	alloc := func() (fields []utils.Matrix) {
		fields = make([]utils.Matrix, len(U0))
		for f := range U0 {
			nr, nc := U0[f].Dims()
			fields[f] = utils.NewMatrix(nr, nc)
		}
		return
	}
	sol = &Solution{
		Time:  t0,
		Dt:    dt,
		U:     make([][]utils.Matrix, it.Order),
		Udot:  make([][]utils.Matrix, it.Order),
		work:  alloc(),
		stage: alloc(),
	}
	for q := 0; q < it.Order; q++ {
		sol.U[q] = alloc()
		sol.Udot[q] = alloc()
	}
	ops.ImplicitSolve(U0, sol.U[0], t0, 0)
	return
}

// GetSolVector returns solution history slot i, the live storage
func (sol *Solution) GetSolVector(i int) []utils.Matrix {
	return sol.U[i]
}

// SetSolVector copies Uin into solution history slot i
func (sol *Solution) SetSolVector(i int, Uin []utils.Matrix) {
	if len(Uin) != len(sol.U[i]) {
		panic(fmt.Errorf("solution slot %d holds %d fields, have %d", i, len(sol.U[i]), len(Uin)))
	}
	CopyFields(sol.U[i], Uin)
}

func (sol *Solution) CompletedSteps() int { return sol.completed }

// EffectiveOrder returns the multistep order in effect, ramping up from 1
// while the history fills
func (sol *Solution) EffectiveOrder(order int) int {
	if sol.completed+1 < order {
		return sol.completed + 1
	}
	return order
}

// CopyFields copies the values of the src group into dst slot by slot
func CopyFields(dst, src []utils.Matrix) {
	for f := range src {
		copy(dst[f].DataP, src[f].DataP)
	}
}

// TimeIntegrate advances the group one step of size dt and returns the new
// solution state, aliasing solution slot 0
func (it *Integrator) TimeIntegrate(dt float64, sol *Solution, ops Operators) (Unew []utils.Matrix) {
	switch it.Scheme {
	case IMEX:
		Unew = it.stepIMEX(dt, sol, ops)
	case ForwardEuler:
		Unew = it.stepForwardEuler(dt, sol, ops)
	case RK2:
		Unew = it.stepRK2(dt, sol, ops)
	}
	sol.completed++
	sol.Time += dt
	return
}

/*
stepIMEX advances one stiffly stable step at the ramped order m,

	gamma0 u(n+1) = Sum_q alpha_q u(n-q) + dt Sum_q beta_q N(u(n-q)) + dt L(u(n+1))

with the explicit evaluations N held in the derivative history and the
implicit part handed to ImplicitSolve with lambda = dt/gamma0
*/
func (it *Integrator) stepIMEX(dt float64, sol *Solution, ops Operators) (Unew []utils.Matrix) {
	var (
		m     = sol.EffectiveOrder(it.Order)
		gamma = gammaIMEX[m]
		alpha = alphaIMEX[m]
		beta  = betaIMEX[m]
	)
	rotate(sol.Udot)
	ops.OdeRHS(sol.U[0], sol.Udot[0], sol.Time)
	for f := range sol.work {
		var (
			w = sol.work[f].DataP
		)
		for i := range w {
			w[i] = 0
		}
		for q := 0; q < m; q++ {
			var (
				uq = sol.U[q][f].DataP
				nq = sol.Udot[q][f].DataP
				ca = alpha[q] / gamma
				cb = dt * beta[q] / gamma
			)
			for i := range w {
				w[i] += ca*uq[i] + cb*nq[i]
			}
		}
	}
	rotate(sol.U)
	ops.ImplicitSolve(sol.work, sol.U[0], sol.Time+dt, dt/gamma)
	Unew = sol.U[0]
	return
}

func (it *Integrator) stepForwardEuler(dt float64, sol *Solution, ops Operators) (Unew []utils.Matrix) {
	ops.OdeRHS(sol.U[0], sol.Udot[0], sol.Time)
	for f := range sol.work {
		var (
			u = sol.U[0][f].DataP
			n = sol.Udot[0][f].DataP
			w = sol.work[f].DataP
		)
		for i := range w {
			w[i] = u[i] + dt*n[i]
		}
	}
	ops.ImplicitSolve(sol.work, sol.U[0], sol.Time+dt, 0)
	Unew = sol.U[0]
	return
}

// stepRK2 is the improved Euler scheme, an explicit Euler stage followed by
// averaging with the slope at the stage result, projected after each stage
func (it *Integrator) stepRK2(dt float64, sol *Solution, ops Operators) (Unew []utils.Matrix) {
	var (
		t = sol.Time
	)
	ops.OdeRHS(sol.U[0], sol.Udot[0], t)
	for f := range sol.work {
		var (
			u = sol.U[0][f].DataP
			n = sol.Udot[0][f].DataP
			w = sol.work[f].DataP
		)
		for i := range w {
			w[i] = u[i] + dt*n[i]
		}
	}
	ops.ImplicitSolve(sol.work, sol.stage, t+dt, 0)
	ops.OdeRHS(sol.stage, sol.Udot[0], t+dt)
	for f := range sol.work {
		var (
			u  = sol.U[0][f].DataP
			u1 = sol.stage[f].DataP
			n  = sol.Udot[0][f].DataP
			w  = sol.work[f].DataP
		)
		for i := range w {
			w[i] = 0.5 * (u[i] + u1[i] + dt*n[i])
		}
	}
	ops.ImplicitSolve(sol.work, sol.U[0], t+dt, 0)
	Unew = sol.U[0]
	return
}

// rotate shifts the history slots up by one, recycling the oldest slot's
// storage as the new slot 0
func rotate(hist [][]utils.Matrix) {
	var (
		last = hist[len(hist)-1]
	)
	for i := len(hist) - 1; i > 0; i-- {
		hist[i] = hist[i-1]
	}
	hist[0] = last
}
