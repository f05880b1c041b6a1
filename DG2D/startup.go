package DG2D

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/notargets/incflow/DG1D"
	"github.com/notargets/incflow/readfiles"
	"github.com/notargets/incflow/types"
	"github.com/notargets/incflow/utils"
)

// Elements2D binds the reference element to a triangular mesh, carrying the
// per element geometric factors, face normals, edge mass assembly and the
// interior/exterior trace connectivity used by the Galerkin operators
type Elements2D struct {
	*LagrangeElement2D
	K            int
	NODETOL      float64
	VX, VY       utils.Vector
	EToV         utils.Matrix
	EToE, EToF   utils.Matrix
	BCEdges      types.BCMAP
	X, Y         utils.Matrix
	FMask        utils.Matrix
	FMaskI       utils.Index
	Fx, Fy       utils.Matrix
	xr, xs       utils.Matrix
	yr, ys       utils.Matrix
	J, sJ        utils.Matrix
	Rx, Ry       utils.Matrix
	Sx, Sy       utils.Matrix
	NX, NY       utils.Matrix
	FScale       utils.Matrix
	Emat, LIFT   utils.Matrix
	VmapM, VmapP utils.Index
	MapB, VmapB  utils.Index
	BCMapM       map[types.BCFLAG]utils.Index
	BCVmapM      map[types.BCFLAG]utils.Index
}

func NewElements2D(N int, meshFile string, verbose bool) (el *Elements2D) {
	var (
		VX, VY  utils.Vector
		EToV    utils.Matrix
		BCEdges types.BCMAP
	)
	switch strings.ToLower(filepath.Ext(meshFile)) {
	case ".neu":
		_, VX, VY, EToV, BCEdges = readfiles.ReadGambit2d(meshFile, verbose)
	case ".su2":
		_, VX, VY, EToV, BCEdges = readfiles.ReadSU2(meshFile, verbose)
	default:
		panic(fmt.Errorf("unable to read mesh file %s, want a .neu or .su2 file", meshFile))
	}
	el = NewElements2DFromMesh(N, VX, VY, EToV, BCEdges)
	return
}

func NewElements2DFromMesh(N int, VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) (el *Elements2D) {
	K, _ := EToV.Dims()
	el = &Elements2D{
		LagrangeElement2D: NewLagrangeElement2D(N),
		K:                 K,
		NODETOL:           1.e-6,
		VX:                VX,
		VY:                VY,
		EToV:              EToV,
		BCEdges:           BCEdges,
	}
	el.Startup2D()
	return
}

func (el *Elements2D) Startup2D() {
	// Physical coordinates of every node via the affine vertex blend
	el.X, el.Y = CalculateElementLocalGeometry(el.EToV, el.VX, el.VY, el.R, el.S)
	// Face masks pick the element nodes lying on each reference edge
	fmask1 := el.S.Copy().AddScalar(1).Find(utils.Less, el.NODETOL, true)
	fmask2 := el.S.Copy().Add(el.R).Find(utils.Less, el.NODETOL, true)
	fmask3 := el.R.Copy().AddScalar(1).Find(utils.Less, el.NODETOL, true)
	el.FMask = utils.NewMatrix(el.Nfp, el.NFaces)
	for f, fmask := range []utils.Index{fmask1, fmask2, fmask3} {
		if len(fmask) != el.Nfp {
			panic(fmt.Errorf("face %d has %d nodes, need %d", f+1, len(fmask), el.Nfp))
		}
		for i, ind := range fmask {
			el.FMask.Set(i, f, float64(ind))
		}
		// FMaskI concatenates the faces so that trace storage is grouped
		// face by face within each element
		el.FMaskI = append(el.FMaskI, fmask...)
	}
	NFacePts := el.Nfp * el.NFaces
	el.Fx, el.Fy = utils.NewMatrix(NFacePts, el.K), utils.NewMatrix(NFacePts, el.K)
	for fp, ind := range el.FMaskI {
		el.Fx.M.SetRow(fp, el.X.M.RawRowView(ind))
		el.Fy.M.SetRow(fp, el.Y.M.RawRowView(ind))
	}
	el.Lift2D()
	el.GeometricFactors2D()
	el.Normals2D()
	// Surface to volume Jacobian ratio at the face points
	el.FScale = utils.NewMatrix(NFacePts, el.K)
	for k := 0; k < el.K; k++ {
		for fp, node := range el.FMaskI {
			el.FScale.Set(fp, k, el.sJ.At(fp, k)/el.J.At(node, k))
		}
	}
	// Build connectivity matrices and trace maps
	el.EToE, el.EToF = Connect2D(el.K, el.NFaces, el.VX.Len(), el.EToV)
	el.BuildMaps2D()
	el.BuildBCMaps()

	// Geometry is fixed once assembled
	el.X.SetReadOnly("X")
	el.Y.SetReadOnly("Y")
	el.Fx.SetReadOnly("Fx")
	el.Fy.SetReadOnly("Fy")
	el.FMask.SetReadOnly("FMask")
	el.Emat.SetReadOnly("Emat")
	el.LIFT.SetReadOnly("LIFT")
	el.NX.SetReadOnly("NX")
	el.NY.SetReadOnly("NY")
	el.FScale.SetReadOnly("FScale")
	el.EToE.SetReadOnly("EToE")
	el.EToF.SetReadOnly("EToF")
	return
}

// GetFaces returns the column-major node ids of the face points of all
// elements, along with the dimensions of the trace storage they fill
func (el *Elements2D) GetFaces() (aI utils.Index, NFacePts, K int) {
	var (
		err      error
		allFaces utils.Index2D
	)
	NFacePts = el.Nfp * el.NFaces
	K = el.K
	allK := utils.NewRangeOffset(1, el.K)
	if allFaces, err = utils.NewIndex2D(el.Np, el.K, el.FMaskI, allK, true); err != nil {
		panic(err)
	}
	aI = allFaces.ToIndex()
	return
}

// GeometricFactors2D differentiates the physical coordinates on the
// reference element and inverts the mapping Jacobian at every node
func (el *Elements2D) GeometricFactors2D() {
	el.xr, el.xs = el.Dr.Mul(el.X), el.Ds.Mul(el.X)
	el.yr, el.ys = el.Dr.Mul(el.Y), el.Ds.Mul(el.Y)
	el.xr.SetReadOnly("xr")
	el.xs.SetReadOnly("xs")
	el.yr.SetReadOnly("yr")
	el.ys.SetReadOnly("ys")
	el.J = utils.NewMatrix(el.Np, el.K)
	el.Rx, el.Sx = utils.NewMatrix(el.Np, el.K), utils.NewMatrix(el.Np, el.K)
	el.Ry, el.Sy = utils.NewMatrix(el.Np, el.K), utils.NewMatrix(el.Np, el.K)
	var (
		xr, xs = el.xr.DataP, el.xs.DataP
		yr, ys = el.yr.DataP, el.ys.DataP
	)
	for i := range el.J.DataP {
		jac := xr[i]*ys[i] - xs[i]*yr[i]
		el.J.DataP[i] = jac
		el.Rx.DataP[i] = ys[i] / jac
		el.Sx.DataP[i] = -yr[i] / jac
		el.Ry.DataP[i] = -xs[i] / jac
		el.Sy.DataP[i] = xr[i] / jac
	}
}

// Normals2D builds the outward unit normals and surface Jacobian at the face
// points of every element from the metric derivatives at those points
func (el *Elements2D) Normals2D() {
	var (
		NFacePts = el.Nfp * el.NFaces
		xr, xs   = el.xr, el.xs
		yr, ys   = el.yr, el.ys
	)
	el.NX, el.NY = utils.NewMatrix(NFacePts, el.K), utils.NewMatrix(NFacePts, el.K)
	el.sJ = utils.NewMatrix(NFacePts, el.K)
	for k := 0; k < el.K; k++ {
		for fp := 0; fp < NFacePts; fp++ {
			var (
				node   = el.FMaskI[fp]
				nx, ny float64
			)
			switch fp / el.Nfp {
			case 0: // Bottom edge, s = -1
				nx, ny = yr.At(node, k), -xr.At(node, k)
			case 1: // Hypotenuse
				nx = ys.At(node, k) - yr.At(node, k)
				ny = xr.At(node, k) - xs.At(node, k)
			case 2: // Left edge, r = -1
				nx, ny = -ys.At(node, k), xs.At(node, k)
			}
			sJ := math.Sqrt(nx*nx + ny*ny)
			el.NX.Set(fp, k, nx/sJ)
			el.NY.Set(fp, k, ny/sJ)
			el.sJ.Set(fp, k, sJ)
		}
	}
}

// Lift2D assembles the edge mass matrices of the three reference faces into
// Emat, the trace integral operator, and the strong form LIFT matrix
func (el *Elements2D) Lift2D() {
	el.Emat = utils.NewMatrix(el.Np, el.NFaces*el.Nfp)
	faceMass := func(basis utils.Vector, faceNum int, cols utils.Index) {
		faceNodes := el.FMask.Col(faceNum).ToIndex()
		// The face nodes trace out a 1D element along the edge, whose mass
		// matrix is (V1D V1D^T)^-1
		V1D := DG1D.Vandermonde1D(el.N, basis.Subset(faceNodes))
		massEdge, err := V1D.Mul(V1D.Transpose()).Inverse()
		if err != nil {
			panic(err)
		}
		I2, err := utils.NewIndex2D(el.Np, el.NFaces*el.Nfp, faceNodes, cols, true)
		if err != nil {
			panic(err)
		}
		el.Emat.Assign(I2.ToIndex(), massEdge)
	}
	faceMass(el.R, 0, utils.NewRange(0, el.Nfp-1))
	faceMass(el.R, 1, utils.NewRange(el.Nfp, 2*el.Nfp-1))
	faceMass(el.S, 2, utils.NewRange(2*el.Nfp, 3*el.Nfp-1))
	// The lift operator folds the inverse mass matrix V V^T into the edge
	// integral assembly
	el.LIFT = el.V.Mul(el.V.Transpose().Mul(el.Emat))
	return
}

// ElementIsDeformed reports whether element k carries a non constant mapping
// Jacobian. Straight sided triangles are affine, so their geometric factors
// are single values per element
func (el *Elements2D) ElementIsDeformed(k int) bool {
	var (
		jD = el.J.DataP
		j0 = jD[k]
	)
	for i := 1; i < el.Np; i++ {
		if math.Abs(jD[i*el.K+k]-j0) > el.NODETOL*math.Abs(j0) {
			return true
		}
	}
	return false
}
