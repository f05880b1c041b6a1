package DG2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/incflow/types"
	"github.com/notargets/incflow/utils"
)

// unitSquareMesh is a two triangle mesh of the unit square, split along the
// diagonal from (0,0) to (1,1). Three sides are tagged wall, the left side
// is tagged as an inflow
func unitSquareMesh() (VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) {
	VX = utils.NewVector(4, []float64{0, 1, 1, 0})
	VY = utils.NewVector(4, []float64{0, 0, 1, 1})
	EToV = utils.NewMatrix(2, 3, []float64{
		0, 1, 2,
		0, 2, 3,
	})
	BCEdges = make(types.BCMAP)
	BCEdges.AddEdges(types.NewBCTAG("wall"), []types.EdgeInt{
		types.NewEdgeInt([2]int{0, 1}),
		types.NewEdgeInt([2]int{1, 2}),
		types.NewEdgeInt([2]int{2, 3}),
	})
	BCEdges.AddEdges(types.NewBCTAG("in"), []types.EdgeInt{
		types.NewEdgeInt([2]int{3, 0}),
	})
	return
}

func unitSquareElements(N int) *Elements2D {
	VX, VY, EToV, BCEdges := unitSquareMesh()
	return NewElements2DFromMesh(N, VX, VY, EToV, BCEdges)
}

func TestStartup2D(t *testing.T) {
	el := unitSquareElements(2)
	var (
		Nfp      = el.Nfp
		NFacePts = Nfp * el.NFaces
	)
	{ // Element connectivity, the two triangles share the diagonal
		assert.Equal(t, 2, el.K)
		etoe := []float64{
			0, 0, 1,
			0, 1, 1,
		}
		etof := []float64{
			0, 1, 0,
			2, 1, 2,
		}
		assert.InDeltaSlice(t, etoe, el.EToE.DataP, 0.000001)
		assert.InDeltaSlice(t, etof, el.EToF.DataP, 0.000001)
	}
	{ // Both mappings are affine with constant Jacobian, area 1/4 each
		for i, j := range el.J.DataP {
			assert.InDeltaf(t, 0.25, j, 0.000001, "jacobian at %d", i)
		}
		assert.False(t, el.ElementIsDeformed(0))
		assert.False(t, el.ElementIsDeformed(1))
	}
	{ // Face normals are unit length and match the known edge directions
		sr2 := 1. / math.Sqrt(2)
		nxExp := [][3]float64{
			{0, 1, -sr2},
			{sr2, 0, -1},
		}
		nyExp := [][3]float64{
			{-1, 0, sr2},
			{-sr2, 1, 0},
		}
		for k := 0; k < el.K; k++ {
			for f := 0; f < el.NFaces; f++ {
				for i := 0; i < Nfp; i++ {
					fp := i + f*Nfp
					nx, ny := el.NX.At(fp, k), el.NY.At(fp, k)
					assert.InDeltaf(t, nxExp[k][f], nx, 0.000001, "nx at face %d of element %d", f, k)
					assert.InDeltaf(t, nyExp[k][f], ny, 0.000001, "ny at face %d of element %d", f, k)
					assert.InDeltaf(t, 1., nx*nx+ny*ny, 0.000001, "normal length at face %d of element %d", f, k)
				}
			}
		}
	}
	{ // Normals point out of their element
		for k := 0; k < el.K; k++ {
			var xc, yc float64
			for i := 0; i < el.Np; i++ {
				xc += el.X.At(i, k)
				yc += el.Y.At(i, k)
			}
			xc, yc = xc/float64(el.Np), yc/float64(el.Np)
			for fp := 0; fp < NFacePts; fp++ {
				dot := el.NX.At(fp, k)*(el.Fx.At(fp, k)-xc) + el.NY.At(fp, k)*(el.Fy.At(fp, k)-yc)
				assert.True(t, dot > 0, "normal at trace point %d of element %d points inward", fp, k)
			}
		}
	}
	{ // Surface Jacobian and face scaling, the diagonal is sqrt(2) longer
		sJExp := [][3]float64{
			{0.5, 0.5, 0.5 * math.Sqrt(2)},
			{0.5 * math.Sqrt(2), 0.5, 0.5},
		}
		for k := 0; k < el.K; k++ {
			for f := 0; f < el.NFaces; f++ {
				for i := 0; i < Nfp; i++ {
					fp := i + f*Nfp
					assert.InDeltaf(t, sJExp[k][f], el.sJ.At(fp, k), 0.000001,
						"sJ at face %d of element %d", f, k)
					assert.InDeltaf(t, sJExp[k][f]/0.25, el.FScale.At(fp, k), 0.000001,
						"FScale at face %d of element %d", f, k)
				}
			}
		}
	}
	{ // Face point coordinates agree with the volume subset
		Fx2 := el.X.Subset(el.GetFaces())
		Fy2 := el.Y.Subset(el.GetFaces())
		assert.InDeltaSlice(t, el.Fx.DataP, Fx2.DataP, 0.000001)
		assert.InDeltaSlice(t, el.Fy.DataP, Fy2.DataP, 0.000001)
	}
	{ // Interior trace points coincide with their exterior partners
		xM, yM := el.X.SubsetVector(el.VmapM), el.Y.SubsetVector(el.VmapM)
		xP, yP := el.X.SubsetVector(el.VmapP), el.Y.SubsetVector(el.VmapP)
		for i := 0; i < xM.Len(); i++ {
			assert.InDeltaf(t, xM.AtVec(i), xP.AtVec(i), 0.000001, "x mismatch at trace point %d", i)
			assert.InDeltaf(t, yM.AtVec(i), yP.AtVec(i), 0.000001, "y mismatch at trace point %d", i)
		}
	}
	{ // Boundary points lie on the perimeter of the square
		assert.Equal(t, 4*Nfp, len(el.MapB))
		xB, yB := el.X.SubsetVector(el.VmapB), el.Y.SubsetVector(el.VmapB)
		onEdge := func(v float64) bool {
			return math.Abs(v) < 0.000001 || math.Abs(v-1.) < 0.000001
		}
		for i := 0; i < xB.Len(); i++ {
			assert.True(t, onEdge(xB.AtVec(i)) || onEdge(yB.AtVec(i)),
				"boundary point %d is interior at (%v,%v)", i, xB.AtVec(i), yB.AtVec(i))
		}
	}
	{ // Boundary condition maps partition the boundary by flag
		assert.Equal(t, 3*Nfp, len(el.BCMapM[types.BC_Wall]))
		assert.Equal(t, Nfp, len(el.BCMapM[types.BC_In]))
		all := make(map[int]bool)
		for _, ids := range el.BCMapM {
			for _, id := range ids {
				all[id] = true
			}
		}
		assert.Equal(t, len(el.MapB), len(all))
		for _, id := range el.MapB {
			assert.True(t, all[id], "boundary trace point %d has no flag", id)
		}
		// The inflow is the left side at x = 0
		xIn := el.X.SubsetVector(el.BCVmapM[types.BC_In])
		for i := 0; i < xIn.Len(); i++ {
			assert.InDeltaf(t, 0., xIn.AtVec(i), 0.000001, "inflow point %d off the left side", i)
		}
	}
}
