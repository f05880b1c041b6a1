package IncNS2D

import (
	"fmt"
	"strings"
)

type EquationType uint

const (
	SteadyStokes EquationType = iota
	SteadyOseen
	SteadyNavierStokes
	SteadyLinearisedNS
	UnsteadyStokes
	UnsteadyNavierStokes
	UnsteadyLinearisedNS
)

var (
	EquationNames = map[string]EquationType{
		"steadystokes":         SteadyStokes,
		"steadyoseen":          SteadyOseen,
		"steadynavierstokes":   SteadyNavierStokes,
		"steadylinearisedns":   SteadyLinearisedNS,
		"unsteadystokes":       UnsteadyStokes,
		"unsteadynavierstokes": UnsteadyNavierStokes,
		"unsteadylinearisedns": UnsteadyLinearisedNS,
	}
	EquationPrintNames = []string{
		"Steady Stokes",
		"Steady Oseen",
		"Steady Navier Stokes",
		"Steady Linearised Navier Stokes",
		"Unsteady Stokes",
		"Unsteady Navier Stokes",
		"Unsteady Linearised Navier Stokes",
	}
)

func (et EquationType) Print() (txt string) {
	txt = EquationPrintNames[et]
	return
}

func NewEquationType(label string) (et EquationType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if et, ok = EquationNames[label]; !ok {
		err = fmt.Errorf("unable to use equation named %s", label)
		panic(err)
	}
	return
}

func (et EquationType) Unsteady() bool {
	switch et {
	case UnsteadyStokes, UnsteadyNavierStokes, UnsteadyLinearisedNS:
		return true
	}
	return false
}

// Advection returns the advection form the equation set carries, the self
// advecting nonlinearity for Navier Stokes, advection by a stored base flow
// for the Oseen and linearised sets, and none for Stokes
func (et EquationType) Advection() (at AdvectionType) {
	switch et {
	case SteadyStokes, UnsteadyStokes:
		at = NoAdvection
	case SteadyOseen, SteadyLinearisedNS, UnsteadyLinearisedNS:
		at = Linearised
	case SteadyNavierStokes, UnsteadyNavierStokes:
		at = Convective
	}
	return
}

type ViscModelType uint

const (
	NoViscModel ViscModelType = iota
	OldroydB
	Giesekus
)

var (
	ViscModelNames = map[string]ViscModelType{
		"none":     NoViscModel,
		"oldroydb": OldroydB,
		"giesekus": Giesekus,
	}
	ViscModelPrintNames = []string{"None", "Oldroyd B", "Giesekus"}
)

func (vt ViscModelType) Print() (txt string) {
	txt = ViscModelPrintNames[vt]
	return
}

func NewViscModelType(label string) (vt ViscModelType) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		return NoViscModel
	}
	label = strings.ToLower(label)
	if vt, ok = ViscModelNames[label]; !ok {
		err = fmt.Errorf("unable to use viscoelastic model named %s", label)
		panic(err)
	}
	return
}

type GlobalSysType uint

const (
	DirectSolve GlobalSysType = iota
	IterativeSolve
)

var (
	GlobalSysNames = map[string]GlobalSysType{
		"direct":    DirectSolve,
		"iterative": IterativeSolve,
	}
	GlobalSysPrintNames = []string{"Direct", "Iterative"}
)

func (gt GlobalSysType) Print() (txt string) {
	txt = GlobalSysPrintNames[gt]
	return
}

func NewGlobalSysType(label string) (gt GlobalSysType) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		return DirectSolve
	}
	label = strings.ToLower(label)
	if gt, ok = GlobalSysNames[label]; !ok {
		err = fmt.Errorf("unable to use linear solver named %s", label)
		panic(err)
	}
	return
}
