package IncNS2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquationTypes(t *testing.T) {
	{ // Equation labels resolve case insensitively
		assert.Equal(t, UnsteadyNavierStokes, NewEquationType("UnsteadyNavierStokes"))
		assert.Equal(t, SteadyOseen, NewEquationType("steadyoseen"))
		assert.Equal(t, "Unsteady Navier Stokes", UnsteadyNavierStokes.Print())
		assert.Panics(t, func() { NewEquationType("potentialflow") })
	}
	{ // Time dependence splits the equation families
		assert.True(t, UnsteadyStokes.Unsteady())
		assert.True(t, UnsteadyLinearisedNS.Unsteady())
		assert.False(t, SteadyNavierStokes.Unsteady())
	}
	{ // Each equation set carries its advection form
		assert.Equal(t, NoAdvection, SteadyStokes.Advection())
		assert.Equal(t, NoAdvection, UnsteadyStokes.Advection())
		assert.Equal(t, Linearised, SteadyOseen.Advection())
		assert.Equal(t, Linearised, UnsteadyLinearisedNS.Advection())
		assert.Equal(t, Convective, UnsteadyNavierStokes.Advection())
	}
	{ // An empty viscoelastic label means no model
		assert.Equal(t, NoViscModel, NewViscModelType(""))
		assert.Equal(t, OldroydB, NewViscModelType("OldroydB"))
		assert.Equal(t, Giesekus, NewViscModelType("giesekus"))
		assert.Equal(t, "Oldroyd B", OldroydB.Print())
		assert.Panics(t, func() { NewViscModelType("fene-p") })
	}
	{ // An empty solver label means the direct path
		assert.Equal(t, DirectSolve, NewGlobalSysType(""))
		assert.Equal(t, IterativeSolve, NewGlobalSysType("Iterative"))
		assert.Equal(t, "Direct", DirectSolve.Print())
		assert.Panics(t, func() { NewGlobalSysType("multigrid") })
	}
}
