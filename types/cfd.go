package types

import (
	"fmt"
	"strings"
)

//go:generate stringer -type=BCFLAG

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_In
	BC_Dirichlet
	BC_Slip
	BC_Far
	BC_Wall
	BC_Cyl
	BC_Neuman
	BC_Out
	BC_IVortex
	BC_Periodic
)

var BCNameMap = map[string]BCFLAG{
	"inflow":    BC_In,
	"in":        BC_In,
	"out":       BC_Out,
	"outflow":   BC_Out,
	"wall":      BC_Wall,
	"far":       BC_Far,
	"cyl":       BC_Cyl,
	"dirichlet": BC_Dirichlet,
	"neuman":    BC_Neuman,
	"slip":      BC_Slip,
	"periodic":  BC_Periodic,
}

// BCTAG is the normalized form of a boundary tag read from a mesh file, the
// base condition name optionally followed by a dash and a connection label,
// as in "periodic-1"
type BCTAG string

func NewBCTAG(label string) (bt BCTAG) {
	bt = BCTAG(strings.ToLower(strings.TrimSpace(label)))
	if bt.GetFLAG() == BC_None {
		panic(fmt.Errorf("unable to parse boundary condition label: [%s]", label))
	}
	return
}

// GetFLAG returns the base boundary condition flag of the tag
func (bt BCTAG) GetFLAG() (bf BCFLAG) {
	base := string(bt)
	if ind := strings.Index(base, "-"); ind != -1 {
		base = base[:ind]
	}
	bf = BCNameMap[base]
	return
}

// GetLabel returns the connection label after the dash, empty when absent
func (bt BCTAG) GetLabel() (label string) {
	if ind := strings.Index(string(bt), "-"); ind != -1 {
		label = string(bt)[ind+1:]
	}
	return
}

// BCMAP collects the boundary edges of a mesh grouped by their tags
type BCMAP map[BCTAG][]EdgeInt

func (bm BCMAP) AddEdges(tag BCTAG, edges []EdgeInt) {
	bm[tag] = append(bm[tag], edges...)
}
