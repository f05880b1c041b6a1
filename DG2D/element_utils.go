package DG2D

import (
	"math"

	"github.com/notargets/incflow/DG1D"
	"github.com/notargets/incflow/utils"
)

// Nodes2D computes the (x,y) interpolation nodes in the equilateral triangle
// for polynomials of order N using the warp and blend construction
func Nodes2D(N int) (x, y utils.Vector) {
	var (
		Np = (N + 1) * (N + 2) / 2
	)
	// Optimal blending parameter per order, 5/3 beyond the tabulated range
	alpopt := []float64{
		0.0000, 0.0000, 1.4152, 0.1001, 0.2751,
		0.9800, 1.0999, 1.2832, 1.3648, 1.4773,
		1.4959, 1.5743, 1.5770, 1.6223, 1.6258,
	}
	alpha := 5. / 3.
	if N < 16 {
		alpha = alpopt[N-1]
	}
	// Equidistributed barycentric coordinates on the triangle
	L1, L2, L3 := utils.NewVector(Np), utils.NewVector(Np), utils.NewVector(Np)
	l1d, l2d, l3d := L1.DataP, L2.DataP, L3.DataP
	var sk int
	for n := 0; n <= N; n++ {
		for m := 0; m <= N-n; m++ {
			l1d[sk] = float64(n) / float64(N)
			l3d[sk] = float64(m) / float64(N)
			l2d[sk] = 1 - l1d[sk] - l3d[sk]
			sk++
		}
	}
	// Edge warp for each of the three edges at every node
	warpf1 := Warpfactor(N, L3.Copy().Subtract(L2))
	warpf2 := Warpfactor(N, L1.Copy().Subtract(L3))
	warpf3 := Warpfactor(N, L2.Copy().Subtract(L1))
	x, y = utils.NewVector(Np), utils.NewVector(Np)
	xd, yd := x.DataP, y.DataP
	// Directions of the warp displacements, normal to each edge
	c2, s2 := math.Cos(2*math.Pi/3), math.Sin(2*math.Pi/3)
	c3, s3 := math.Cos(4*math.Pi/3), math.Sin(4*math.Pi/3)
	for i := 0; i < Np; i++ {
		// Blend limits each edge's warp to its own vicinity
		w1 := 4 * l2d[i] * l3d[i] * warpf1[i] * (1 + utils.POW(alpha*l1d[i], 2))
		w2 := 4 * l1d[i] * l3d[i] * warpf2[i] * (1 + utils.POW(alpha*l2d[i], 2))
		w3 := 4 * l1d[i] * l2d[i] * warpf3[i] * (1 + utils.POW(alpha*l3d[i], 2))
		xd[i] = l3d[i] - l2d[i] + w1 + c2*w2 + c3*w3
		yd[i] = (2*l1d[i]-l3d[i]-l2d[i])/math.Sqrt(3) + s2*w2 + s3*w3
	}
	return
}

// Warpfactor computes the 1D edge warp that moves equidistributed nodes onto
// the Legendre Gauss Lobatto distribution, evaluated at locations rout
func Warpfactor(N int, rout utils.Vector) (warpF []float64) {
	// LGL and equidistant node distributions
	LGLr, _ := DG1D.JacobiGL(0, 0, N)
	req := utils.NewVector(N + 1).Linspace(-1, 1)
	Veq := DG1D.Vandermonde1D(N, req)
	// Lagrange interpolation from the equidistant nodes, evaluated at rout
	Pmat := utils.NewMatrix(N+1, rout.Len())
	for i := 0; i <= N; i++ {
		Pmat.M.SetRow(i, DG1D.JacobiP(rout, 0, 0, i))
	}
	Lmat := Veq.Transpose().LUSolve(Pmat)
	// Interpolated displacement between the two distributions
	warp := Lmat.Transpose().Mul(LGLr.Subtract(req).ToMatrix())
	// Scale by 1-r^2 over the interior, zero at the edge endpoints
	warpF = warp.DataP
	for i, r := range rout.DataP {
		if math.Abs(r) < 1-1.e-10 {
			warpF[i] /= 1 - r*r
		} else {
			warpF[i] = 0
		}
	}
	return
}

// XYtoRS transfers from (x,y) coordinates in the equilateral triangle to
// (r,s) coordinates in the standard triangle
func XYtoRS(x, y utils.Vector) (r, s utils.Vector) {
	r, s = utils.NewVector(x.Len()), utils.NewVector(x.Len())
	var (
		xd, yd = x.DataP, y.DataP
		rd, sd = r.DataP, s.DataP
	)
	sr3 := math.Sqrt(3)
	for i := range xd {
		l1 := (sr3*yd[i] + 1) / 3
		l2 := (-3*xd[i] - sr3*yd[i] + 2) / 6
		l3 := (3*xd[i] - sr3*yd[i] + 2) / 6
		rd[i] = -l2 + l3 - l1
		sd[i] = -l2 - l3 + l1
	}
	return
}

// RStoAB maps the standard triangle to the collapsed coordinate square used
// by the tensor product Jacobi basis
func RStoAB(R, S utils.Vector) (a, b utils.Vector) {
	var (
		Np     = R.Len()
		rd, sd = R.DataP, S.DataP
	)
	ad, bd := make([]float64, Np), make([]float64, Np)
	for n, sval := range sd {
		ad[n], bd[n] = rsToab(rd[n], sval)
	}
	a, b = utils.NewVector(Np, ad), utils.NewVector(Np, bd)
	return
}

func rsToab(r, s float64) (a, b float64) {
	if s != 1 {
		a = 2*(1+r)/(1-s) - 1
	} else {
		a = -1
	}
	b = s
	return
}

// Vandermonde2D produces the generalized Vandermonde matrix of the
// orthonormal simplex basis evaluated at nodes (R,S)
func Vandermonde2D(N int, R, S utils.Vector) (V2D utils.Matrix) {
	V2D = utils.NewMatrix(R.Len(), (N+1)*(N+2)/2)
	var sk int
	for i := 0; i <= N; i++ {
		for j := 0; j <= (N - i); j++ {
			V2D.SetCol(sk, Simplex2DP(R, S, i, j))
			sk++
		}
	}
	return
}

// Simplex2DP evaluates the orthonormal polynomial of order (i,j) on the
// simplex at points (R,S)
func Simplex2DP(R, S utils.Vector, i, j int) (P []float64) {
	A, B := RStoAB(R, S)
	h1 := DG1D.JacobiP(A, 0, 0, i)
	h2 := DG1D.JacobiP(B, float64(2*i+1), 0, j)
	bd := B.DataP
	P = make([]float64, len(h1))
	for n := range P {
		P[n] = math.Sqrt2 * h1[n] * h2[n] * utils.POW(1-bd[n], i)
	}
	return
}

// GradVandermonde2D produces the r and s derivative Vandermonde matrices of
// the simplex basis at nodes (R,S)
func GradVandermonde2D(N int, R, S utils.Vector) (V2Dr, V2Ds utils.Matrix) {
	var (
		Np = (N + 1) * (N + 2) / 2
		Nr = R.Len()
	)
	V2Dr, V2Ds = utils.NewMatrix(Nr, Np), utils.NewMatrix(Nr, Np)
	var sk int
	for i := 0; i <= N; i++ {
		for j := 0; j <= (N - i); j++ {
			ddr, dds := GradSimplex2DP(R, S, i, j)
			V2Dr.M.SetCol(sk, ddr)
			V2Ds.M.SetCol(sk, dds)
			sk++
		}
	}
	return
}

// GradSimplex2DP evaluates the (r,s) derivatives of the orthonormal simplex
// polynomial of order (id,jd) at points (R,S)
func GradSimplex2DP(R, S utils.Vector, id, jd int) (ddr, dds []float64) {
	var (
		A, B   = RStoAB(R, S)
		ad, bd = A.DataP, B.DataP
	)
	fa := DG1D.JacobiP(A, 0, 0, id)
	dfa := DG1D.GradJacobiP(A, 0, 0, id)
	gb := DG1D.JacobiP(B, 2*float64(id)+1, 0, jd)
	dgb := DG1D.GradJacobiP(B, 2*float64(id)+1, 0, jd)
	norm := math.Pow(2, float64(id)+0.5)
	ddr, dds = make([]float64, len(gb)), make([]float64, len(gb))
	for n := range gb {
		// The id-1 power of (1-b)/2 is shared by every term of both
		// derivatives through the collapsed coordinate chain rule
		hb := 1.
		if id > 0 {
			hb = utils.POW(0.5*(1-bd[n]), id-1)
		}
		// d/dr = da/dr d/da = (2/(1-b)) d/da
		ddr[n] = dfa[n] * gb[n] * hb * norm
		// d/ds = ((1+a)/2)(2/(1-b)) d/da + d/db
		aTerm := 0.5 * dfa[n] * gb[n] * (1 + ad[n]) * hb
		bTerm := dgb[n]
		if id > 0 {
			bTerm = dgb[n]*0.5*(1-bd[n])*hb - 0.5*float64(id)*gb[n]*hb
		}
		dds[n] = (aTerm + fa[n]*bTerm) * norm
	}
	return
}

// CalculateElementLocalGeometry transforms reference coordinates [R,S] into
// physical coordinates [X,Y] for each element in the mesh
func CalculateElementLocalGeometry(EToV utils.Matrix, VX, VY, R, S utils.Vector) (X, Y utils.Matrix) {
	var (
		Np     = R.Len()
		K, _   = EToV.Dims()
		rd, sd = R.DataP, S.DataP
	)
	X, Y = utils.NewMatrix(Np, K), utils.NewMatrix(Np, K)
	for k := 0; k < K; k++ {
		va, vb, vc := int(EToV.At(k, 0)), int(EToV.At(k, 1)), int(EToV.At(k, 2))
		xa, xb, xc := VX.AtVec(va), VX.AtVec(vb), VX.AtVec(vc)
		ya, yb, yc := VY.AtVec(va), VY.AtVec(vb), VY.AtVec(vc)
		for i := 0; i < Np; i++ {
			// Affine blend of the vertex coordinates by reference position
			wa, wb, wc := -(rd[i] + sd[i]), 1+rd[i], 1+sd[i]
			X.Set(i, k, 0.5*(wa*xa+wb*xb+wc*xc))
			Y.Set(i, k, 0.5*(wa*ya+wb*yb+wc*yc))
		}
	}
	return
}
