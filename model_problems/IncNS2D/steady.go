package IncNS2D

import (
	"math"

	"github.com/notargets/incflow/utils"
)

// SteadyMonitor watches the solution settle by comparing the squared modal
// norm of successive checks. The first check compares against zero, so a
// solution that starts and stays at rest converges immediately
type SteadyMonitor struct {
	Tol  float64
	prev float64
}

func NewSteadyMonitor(tol float64) *SteadyMonitor {
	return &SteadyMonitor{Tol: tol}
}

// Check sums the squared coefficients over the monitored fields and reports
// convergence when the change since the previous check falls below the
// tolerance scaled by the coefficient count. The norm is retained either way
func (sm *SteadyMonitor) Check(coeffs []utils.Matrix) (converged bool) {
	var (
		l2      float64
		nCoeffs int
	)
	for _, c := range coeffs {
		for _, v := range c.DataP {
			l2 += v * v
		}
		nCoeffs += len(c.DataP)
	}
	converged = math.Abs(l2-sm.prev) < float64(nCoeffs)*sm.Tol
	sm.prev = l2
	return
}
