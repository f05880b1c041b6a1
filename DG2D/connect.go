package DG2D

import (
	"fmt"

	"github.com/notargets/incflow/types"
	"github.com/notargets/incflow/utils"
)

// Connect2D builds the element to element and element to face connectivity
// from the element to vertex table, using a sparse face to vertex incidence
// matrix. Unconnected faces point back at themselves
func Connect2D(K, NFaces, Nv int, EToV utils.Matrix) (EToE, EToF utils.Matrix) {
	var (
		TotalFaces = NFaces * K
	)
	// Global face to vertex incidence
	SpFToVDOK := utils.NewDOK(TotalFaces, Nv)
	var sk int
	for k := 0; k < K; k++ {
		verts := []int{int(EToV.At(k, 0)), int(EToV.At(k, 1)), int(EToV.At(k, 2))}
		for _, face := range utils.GetElementFaces(utils.Triangle, verts) {
			SpFToVDOK.M.Set(sk, face[0], 1)
			SpFToVDOK.M.Set(sk, face[1], 1)
			sk++
		}
	}
	// Global face to face connections share both vertices
	SpFToV := SpFToVDOK.ToCSR()
	SpFToF := utils.NewCSR(TotalFaces, TotalFaces)
	SpFToF.M.Mul(SpFToV.M, SpFToV.T())
	for i := 0; i < TotalFaces; i++ {
		SpFToF.M.Set(i, i, SpFToF.At(i, i)-2)
	}
	F12 := utils.MatFind(SpFToF, utils.Equal, 2)

	element1 := F12.RI.Copy().Apply(func(val int) int { return val / NFaces })
	face1 := F12.RI.Copy().Apply(func(val int) int { return val % NFaces })
	element2 := F12.CI.Copy().Apply(func(val int) int { return val / NFaces })
	face2 := F12.CI.Copy().Apply(func(val int) int { return val % NFaces })

	// Rearrange into K x NFaces sized arrays, initialized to self connection
	EToE = utils.NewRangeOffset(1, K).Outer(utils.NewOnes(NFaces))
	EToF = utils.NewOnes(K).Outer(utils.NewRangeOffset(1, NFaces))
	I2D, err := utils.NewIndex2D(K, NFaces, element1, face1)
	if err != nil {
		panic(err)
	}
	EToE.Assign(I2D.ToIndex(), element2)
	EToF.Assign(I2D.ToIndex(), face2)
	return
}

// BuildMaps2D computes VmapM and VmapP, the volume node ids of the interior
// and exterior solution values at each face point of each element. Exterior
// points are matched to their neighbor's face points by physical coincidence,
// and boundary points map to themselves
func (el *Elements2D) BuildMaps2D() {
	var (
		NFacePts = el.Nfp * el.NFaces
		one      = utils.NewVector(el.Nfp).Set(1)
	)
	el.VmapM = utils.NewIndex(NFacePts * el.K)
	for k := 0; k < el.K; k++ {
		for fp, ind := range el.FMaskI {
			el.VmapM[fp+NFacePts*k] = ind + el.Np*k
		}
	}
	el.VmapP = el.VmapM.Copy()
	for k1 := 0; k1 < el.K; k1++ {
		for f1 := 0; f1 < el.NFaces; f1++ {
			k2, f2 := int(el.EToE.At(k1, f1)), int(el.EToF.At(k1, f1))
			if k2 == k1 && f2 == f1 {
				continue
			}
			idsM := utils.NewRangeOffset(1+f1*el.Nfp, (f1+1)*el.Nfp).Add(k1 * NFacePts)
			idsP := utils.NewRangeOffset(1+f2*el.Nfp, (f2+1)*el.Nfp).Add(k2 * NFacePts)
			vidM := el.VmapM.Subset(idsM)
			vidP := el.VmapM.Subset(idsP)
			x1, y1 := el.X.SubsetVector(vidM), el.Y.SubsetVector(vidM)
			x2, y2 := el.X.SubsetVector(vidP), el.Y.SubsetVector(vidP)
			// Squared distances between the two sets of face points
			X1, Y1 := x1.Outer(one), y1.Outer(one)
			X2, Y2 := x2.Outer(one), y2.Outer(one)
			D := X1.Subtract(X2.Transpose()).POW(2).Add(Y1.Subtract(Y2.Transpose()).POW(2))
			v1 := int(el.EToV.At(k1, f1))
			v2 := int(el.EToV.At(k1, (f1+1)%el.NFaces))
			refd2 := utils.POW(el.VX.AtVec(v1)-el.VX.AtVec(v2), 2) +
				utils.POW(el.VY.AtVec(v1)-el.VY.AtVec(v2), 2)
			idMP := utils.MatFind(D, utils.Less, el.NODETOL*el.NODETOL*refd2)
			if idMP.Len != el.Nfp {
				panic(fmt.Errorf("matched %d of %d face points between elements %d and %d",
					idMP.Len, el.Nfp, k1, k2))
			}
			for i, iM := range idMP.RI {
				el.VmapP[idsM[iM]] = vidP[idMP.CI[i]]
			}
		}
	}
	// Boundary trace points are those that match themselves
	el.MapB = el.VmapP.FindVec(utils.Equal, el.VmapM)
	el.VmapB = el.VmapM.Subset(el.MapB)
}

// BuildBCMaps groups the boundary trace points by boundary condition flag,
// using the tagged mesh edges. Every tagged edge must be an unconnected face
func (el *Elements2D) BuildBCMaps() {
	var (
		NFacePts = el.Nfp * el.NFaces
	)
	el.BCMapM = make(map[types.BCFLAG]utils.Index)
	el.BCVmapM = make(map[types.BCFLAG]utils.Index)
	// Index the unconnected faces by their vertex pair
	bFaces := make(map[types.EdgeKey][2]int)
	for k := 0; k < el.K; k++ {
		verts := []int{int(el.EToV.At(k, 0)), int(el.EToV.At(k, 1)), int(el.EToV.At(k, 2))}
		for f, face := range utils.GetElementFaces(utils.Triangle, verts) {
			if int(el.EToE.At(k, f)) == k && int(el.EToF.At(k, f)) == f {
				bFaces[types.NewEdgeKey([2]int{face[0], face[1]})] = [2]int{k, f}
			}
		}
	}
	for tag, edges := range el.BCEdges {
		flag := tag.GetFLAG()
		for _, e := range edges {
			kf, ok := bFaces[e.GetKey()]
			if !ok {
				panic(fmt.Errorf("tagged edge %v is not a boundary face of the mesh", e.GetVertices()))
			}
			k, f := kf[0], kf[1]
			ids := utils.NewRangeOffset(1+f*el.Nfp, (f+1)*el.Nfp).Add(k * NFacePts)
			el.BCMapM[flag] = append(el.BCMapM[flag], ids...)
		}
	}
	for flag, ids := range el.BCMapM {
		el.BCVmapM[flag] = el.VmapM.Subset(ids)
	}
}
