package readfiles

import (
	"image/color"

	"github.com/notargets/avs/chart2d"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/incflow/types"
	"github.com/notargets/incflow/utils"
)

// PlotMesh opens a live chart of the mesh with boundary faces colored by
// their condition flags, optionally marking the interior solution points
func PlotMesh(VX, VY utils.Vector, EToV, X, Y utils.Matrix, BCEdges types.BCMAP, plotPoints bool) (chart *chart2d.Chart2D) {
	var (
		points   []graphics2D.Point
		trimesh  graphics2D.TriMesh
		vxD, vyD = VX.DataP, VY.DataP
		K, _     = EToV.Dims()
	)
	points = make([]graphics2D.Point, VX.Len())
	for i, vx := range vxD {
		points[i].X[0] = float32(vx)
		points[i].X[1] = float32(vyD[i])
	}
	// Index the tagged boundary edges for face attribute lookup
	bcFaces := make(map[types.EdgeKey]types.BCFLAG)
	for tag, edges := range BCEdges {
		flag := tag.GetFLAG()
		for _, e := range edges {
			bcFaces[e.GetKey()] = flag
		}
	}
	trimesh.Triangles = make([]graphics2D.Triangle, K)
	colorMap := utils2.NewColorMap(0, float32(types.BC_Periodic), 1)
	trimesh.Attributes = make([][]float32, K) // Per face BC color attribute
	for k := 0; k < K; k++ {
		verts := []int{int(EToV.At(k, 0)), int(EToV.At(k, 1)), int(EToV.At(k, 2))}
		trimesh.Attributes[k] = make([]float32, 3)
		for i := 0; i < 3; i++ {
			trimesh.Triangles[k].Nodes[i] = int32(verts[i])
		}
		for i, face := range utils.GetElementFaces(utils.Triangle, verts) {
			ek := types.NewEdgeKey([2]int{face[0], face[1]})
			trimesh.Attributes[k][i] = float32(bcFaces[ek])
		}
	}
	trimesh.Geometry = points
	box := graphics2D.NewBoundingBox(trimesh.GetGeometry())
	box = box.Scale(1.5)
	chart = chart2d.NewChart2D(1920, 1920, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1])
	chart.AddColorMap(colorMap)
	go chart.Plot()
	white := color.RGBA{R: 255, G: 255, B: 255, A: 0}
	black := color.RGBA{R: 0, G: 0, B: 0, A: 0}
	if err := chart.AddTriMesh("TriMesh", trimesh,
		chart2d.CrossGlyph, chart2d.Solid, white); err != nil {
		panic("cannot add mesh series to chart")
	}
	ptsGlyph := chart2d.NoGlyph
	if plotPoints {
		ptsGlyph = chart2d.CircleGlyph
	}
	if err := chart.AddSeries("Elements", X.Transpose().DataP, Y.Transpose().DataP,
		ptsGlyph, chart2d.NoLine, black); err != nil {
		panic(err)
	}
	return
}
