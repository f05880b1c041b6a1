package geometry2D

import (
	graphics2D "github.com/notargets/avs/geometry"
	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/incflow/types"
	"github.com/notargets/incflow/utils"
)

/*
Built in triangular meshes for solver runs and tests that do not need a grid
file. Meshes are returned in the same form the grid file readers produce, the
vertex coordinate vectors, the element to vertex table with counter clockwise
vertex ordering, and the tagged boundary edges.
*/

// UnitSquareMesh is the two triangle unit square split along the (0,0)-(1,1)
// diagonal, element 0 below the diagonal, element 1 above. All four sides are
// tagged wall
func UnitSquareMesh() (VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) {
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
		types.NewEdgeInt([2]int{3, 0}),
	})
	return
}

// SquareMesh covers the unit square with an n x n grid of cells, each split
// into two triangles along its lower left to upper right diagonal. The outer
// boundary is tagged wall
func SquareMesh(n int) (VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) {
	var (
		nv     = (n + 1) * (n + 1)
		h      = 1. / float64(n)
		vx, vy = make([]float64, nv), make([]float64, nv)
	)
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			v := j*(n+1) + i
			vx[v], vy[v] = float64(i)*h, float64(j)*h
		}
	}
	VX, VY = utils.NewVector(nv, vx), utils.NewVector(nv, vy)
	etov := make([]float64, 0, 6*n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			var (
				ll = j*(n+1) + i
				lr = ll + 1
				ul = ll + n + 1
				ur = ul + 1
			)
			etov = append(etov, float64(ll), float64(lr), float64(ur))
			etov = append(etov, float64(ll), float64(ur), float64(ul))
		}
	}
	EToV = utils.NewMatrix(2*n*n, 3, etov)
	var edges []types.EdgeInt
	for i := 0; i < n; i++ {
		edges = append(edges,
			types.NewEdgeInt([2]int{i, i + 1}),
			types.NewEdgeInt([2]int{n*(n+1) + i + 1, n*(n+1) + i}))
	}
	for j := 0; j < n; j++ {
		edges = append(edges,
			types.NewEdgeInt([2]int{(j + 1) * (n + 1), j * (n + 1)}),
			types.NewEdgeInt([2]int{j*(n+1) + n, (j+1)*(n+1) + n}))
	}
	BCEdges = make(types.BCMAP)
	BCEdges.AddEdges(types.NewBCTAG("wall"), edges)
	return
}

// DelaunayMesh triangulates a cloud of points and tags the hull edges, the
// edges owned by a single triangle, as walls
func DelaunayMesh(pts [][2]float64) (VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) {
	var (
		nv     = len(pts)
		vx, vy = make([]float64, nv), make([]float64, nv)
	)
	for i, pt := range pts {
		vx[i], vy[i] = pt[0], pt[1]
	}
	VX, VY = utils.NewVector(nv, vx), utils.NewVector(nv, vy)
	faces := orientCCW(triangle.Delaunay(pts), vx, vy)
	etov := make([]float64, 0, 3*len(faces))
	for _, f := range faces {
		etov = append(etov, float64(f[0]), float64(f[1]), float64(f[2]))
	}
	EToV = utils.NewMatrix(len(faces), 3, etov)
	// An interior edge is traversed once by each of its two triangles
	seen := make(map[types.EdgeKey]int)
	for _, f := range faces {
		for e := 0; e < 3; e++ {
			seen[types.NewEdgeKey([2]int{int(f[e]), int(f[(e+1)%3])})]++
		}
	}
	var hull []types.EdgeInt
	for _, f := range faces {
		for e := 0; e < 3; e++ {
			pair := [2]int{int(f[e]), int(f[(e+1)%3])}
			if seen[types.NewEdgeKey(pair)] == 1 {
				hull = append(hull, types.NewEdgeInt(pair))
			}
		}
	}
	BCEdges = make(types.BCMAP)
	BCEdges.AddEdges(types.NewBCTAG("wall"), hull)
	return
}

func orientCCW(faces [][3]int32, vx, vy []float64) [][3]int32 {
	for i, f := range faces {
		var (
			x1, y1 = vx[f[0]], vy[f[0]]
			x2, y2 = vx[f[1]], vy[f[1]]
			x3, y3 = vx[f[2]], vy[f[2]]
		)
		if (x2-x1)*(y3-y1)-(x3-x1)*(y2-y1) < 0 {
			faces[i][1], faces[i][2] = f[2], f[1]
		}
	}
	return faces
}

// TriangulateNodes sub triangulates a nodal point set, used to render the
// interior of high order elements
func TriangulateNodes(R, S utils.Vector) (faces [][3]int32) {
	pts := make([][2]float64, R.Len())
	for i := range pts {
		pts[i] = [2]float64{R.AtVec(i), S.AtVec(i)}
	}
	return orientCCW(triangle.Delaunay(pts), R.DataP, S.DataP)
}

// NodalTriMesh builds the graphics mesh of every element's nodal points, sub
// triangulated once in the reference element and replicated across the mesh.
// Point ordering matches the solution storage, element k node i lands at
// k*Np+i
func NodalTriMesh(R, S utils.Vector, X, Y utils.Matrix) (gm graphics2D.TriMesh) {
	var (
		faces  = TriangulateNodes(R, S)
		Np, K  = X.Dims()
		points = make([]graphics2D.Point, Np*K)
	)
	for k := 0; k < K; k++ {
		for i := 0; i < Np; i++ {
			points[k*Np+i].X[0] = float32(X.At(i, k))
			points[k*Np+i].X[1] = float32(Y.At(i, k))
		}
	}
	tris := make([]graphics2D.Triangle, 0, K*len(faces))
	for k := 0; k < K; k++ {
		off := int32(k * Np)
		for _, f := range faces {
			tris = append(tris, graphics2D.Triangle{
				Nodes: [3]int32{f[0] + off, f[1] + off, f[2] + off},
			})
		}
	}
	gm = graphics2D.TriMesh{
		BaseGeometryClass: graphics2D.BaseGeometryClass{
			Geometry: points,
		},
		Triangles:  tris,
		Attributes: nil,
	}
	return
}
