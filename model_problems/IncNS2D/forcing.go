package IncNS2D

import (
	"fmt"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/utils"
)

// BodyForce adds a constant volumetric force to the momentum right hand side.
// When a homogeneous expansion is active the force is taken to wave space
// once at construction, so the per step addition stays a plain accumulate in
// whichever representation the fields advance in
type BodyForce struct {
	Vals []float64
	wave [][]utils.Matrix // per component plane stack, wave space
}

func NewBodyForce(vals []float64, hom *DG2D.Homogeneous1D, ncomp int) (bf *BodyForce) {
	if len(vals) == 0 {
		return nil
	}
	if len(vals) != ncomp {
		panic(fmt.Errorf("body force has %d components, need %d", len(vals), ncomp))
	}
	bf = &BodyForce{Vals: vals}
	if hom != nil {
		bf.wave = make([][]utils.Matrix, ncomp)
		for n := 0; n < ncomp; n++ {
			fld := hom.NewHomoField("force")
			U := utils.NewMatrix(hom.El.Np, hom.El.K).AddScalar(vals[n])
			fld.SetConstantInZ(U)
			fld.HomogeneousFwdTrans()
			bf.wave[n] = fld.Planes
		}
	}
	return
}

// AddTo accumulates the force onto the physical space right hand side
func (bf *BodyForce) AddTo(Out []utils.Matrix) {
	if bf == nil {
		return
	}
	for n := range Out {
		Out[n].AddScalar(bf.Vals[n])
	}
}

// AddToWave accumulates the force onto a wave space right hand side laid out
// as component major plane stacks
func (bf *BodyForce) AddToWave(Out []utils.Matrix, nz int) {
	if bf == nil {
		return
	}
	for n := range bf.wave {
		for z := 0; z < nz; z++ {
			Out[n*nz+z].Add(bf.wave[n][z])
		}
	}
}
