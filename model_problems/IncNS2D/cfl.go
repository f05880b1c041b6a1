package IncNS2D

import (
	"fmt"
	"math"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/utils"
)

// Proportionality constant between the polynomial order scaling and the
// advective stable step of the explicit sub step schemes
const cLambda = 0.2

/*
StandardVelocity maps the velocity at every node into the reference element
and returns, per element, the largest transformed magnitude. Affine elements
use their constant geometric factors, deformed elements the factors at each
node. The advecting field must carry at least the two in plane components.
*/
func StandardVelocity(el *DG2D.Elements2D, Vel []utils.Matrix) (stdVel []float64) {
	if len(Vel) < 2 {
		panic(fmt.Errorf("velocity dimension must be at least 2, have %d", len(Vel)))
	}
	var (
		u, v           = Vel[0], Vel[1]
		rx, ry, sx, sy float64
	)
	stdVel = make([]float64, el.K)
	for k := 0; k < el.K; k++ {
		deformed := el.ElementIsDeformed(k)
		if !deformed {
			rx, ry = el.Rx.At(0, k), el.Ry.At(0, k)
			sx, sy = el.Sx.At(0, k), el.Sy.At(0, k)
		}
		var vMax float64
		for i := 0; i < el.Np; i++ {
			if deformed {
				rx, ry = el.Rx.At(i, k), el.Ry.At(i, k)
				sx, sy = el.Sx.At(i, k), el.Sy.At(i, k)
			}
			v1 := rx*u.At(i, k) + ry*v.At(i, k)
			v2 := sx*u.At(i, k) + sy*v.At(i, k)
			if mag := v1*v1 + v2*v2; mag > vMax {
				vMax = mag
			}
		}
		stdVel[k] = math.Sqrt(vMax)
	}
	return
}

/*
StableTimeStep returns the largest explicit advective step permitted by the
velocity field under the safety factor cflSafety. Each element contributes

	dt_k = cflSafety / (stdVel_k * 0.2 * (P-1)^2)

where P counts the modes of the expansion, and the mesh wide step is the
minimum. A quiescent field places no constraint and yields MaxFloat64.
*/
func StableTimeStep(el *DG2D.Elements2D, Vel []utils.Matrix, cflSafety float64) (dt float64) {
	utils.IsNanPanic(Vel) // a diverged field has no stable step
	var (
		stdVel   = StandardVelocity(el, Vel)
		expOrder = el.N + 1
		pScale   = cLambda * float64((expOrder-1)*(expOrder-1))
	)
	dt = math.MaxFloat64
	for k := 0; k < el.K; k++ {
		denom := stdVel[k] * pScale
		if denom < 1.e-14 {
			continue
		}
		if dtK := cflSafety / denom; dtK < dt {
			dt = dtK
		}
	}
	return
}
