package IncNS2D

import (
	"sync"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/utils"
)

// Mass shift pinning the per element constant mode of the Poisson operator.
// The right hand side is projected off the constants first, so the pin only
// stabilizes the factorization
const pressurePin = 1.e-8

/*
ElementHelmholtz solves the element local Helmholtz problem

	(a M_k + c S_k) u_k = M_k f_k

per element, where M_k is the Jacobian weighted reference mass matrix, S_k the
stiffness matrix assembled from the physical derivative operators, a the mass
coefficient handed to Solve and c the fixed stiffness coefficient. Element
blocks are mutually uncoupled, so the direct path keeps one factored inverse
per element and mass coefficient, while the iterative path assembles the block
diagonal system once per coefficient and runs GMRES on it. With a partition
map set, the per element factorization and solve loops fan out over worker
goroutines by element bucket.

The element operators are built from the constant geometric factors, matching
the affine mapping of the mesh reader.
*/
type ElementHelmholtz struct {
	El         *DG2D.Elements2D
	StiffCoeff float64
	Soln       GlobalSysType
	PM         *utils.PartitionMap
	Mk, Sk     []utils.Matrix
	vol        []float64
	inv        map[float64][]utils.Matrix
	sys        map[float64]*utils.BlockSparse
}

func NewElementHelmholtz(el *DG2D.Elements2D, stiffCoeff float64, soln GlobalSysType) (eh *ElementHelmholtz) {
	eh = &ElementHelmholtz{
		El:         el,
		StiffCoeff: stiffCoeff,
		Soln:       soln,
		Mk:         make([]utils.Matrix, el.K),
		Sk:         make([]utils.Matrix, el.K),
		vol:        make([]float64, el.K),
		inv:        make(map[float64][]utils.Matrix),
		sys:        make(map[float64]*utils.BlockSparse),
	}
	for k := 0; k < el.K; k++ {
		Mk := el.MassMatrix.Copy().Scale(el.J.At(0, k))
		Dx := el.Dr.Copy().Scale(el.Rx.At(0, k)).Add(el.Ds.Copy().Scale(el.Sx.At(0, k)))
		Dy := el.Dr.Copy().Scale(el.Ry.At(0, k)).Add(el.Ds.Copy().Scale(el.Sy.At(0, k)))
		Sk := Dx.Transpose().Mul(Mk).Mul(Dx).Add(Dy.Transpose().Mul(Mk).Mul(Dy))
		eh.Mk[k] = Mk
		eh.Sk[k] = Sk
		for _, v := range Mk.DataP {
			eh.vol[k] += v
		}
	}
	return
}

// Partition fans the per element factorization and solve work out across
// worker goroutines, one contiguous bucket of elements each
func (eh *ElementHelmholtz) Partition(pm *utils.PartitionMap) {
	eh.PM = pm
}

// forEachElement runs work over every element, in parallel per bucket when a
// partition map is set. The work closures write only element k state
func (eh *ElementHelmholtz) forEachElement(work func(k int)) {
	if eh.PM == nil || eh.PM.ParallelDegree < 2 {
		for k := 0; k < eh.El.K; k++ {
			work(k)
		}
		return
	}
	var wg sync.WaitGroup
	for n := 0; n < eh.PM.ParallelDegree; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			kMin, kMax := eh.PM.GetBucketRange(n)
			for k := kMin; k < kMax; k++ {
				work(k)
			}
		}(n)
	}
	wg.Wait()
}

// element assembles the operator block aM + cS of element k
func (eh *ElementHelmholtz) element(k int, massCoeff float64) utils.Matrix {
	return eh.Mk[k].Copy().Scale(massCoeff).Add(eh.Sk[k].Copy().Scale(eh.StiffCoeff))
}

// factor builds and caches the solve machinery for one mass coefficient
func (eh *ElementHelmholtz) factor(massCoeff float64) {
	var (
		el = eh.El
	)
	switch eh.Soln {
	case DirectSolve:
		if _, have := eh.inv[massCoeff]; have {
			return
		}
		inv := make([]utils.Matrix, el.K)
		eh.forEachElement(func(k int) {
			inv[k] = eh.element(k, massCoeff).InverseWithCheck()
		})
		eh.inv[massCoeff] = inv
	case IterativeSolve:
		if _, have := eh.sys[massCoeff]; have {
			return
		}
		addrs := make([][2]int, el.K)
		for k := 0; k < el.K; k++ {
			addrs[k] = [2]int{k, k}
		}
		sys := utils.NewBlockSparse(el.K, el.K, el.Np, el.Np, addrs)
		eh.forEachElement(func(k int) {
			copy(sys.GetBlockView(k, k).DataP, eh.element(k, massCoeff).DataP)
		})
		eh.sys[massCoeff] = sys
	}
}

// Solve returns the element local solution of (a M + c S) u = M f for the
// point values f, with a = massCoeff
func (eh *ElementHelmholtz) Solve(massCoeff float64, F utils.Matrix) (U utils.Matrix) {
	var (
		el = eh.El
	)
	eh.factor(massCoeff)
	U = utils.NewMatrix(el.Np, el.K)
	switch eh.Soln {
	case DirectSolve:
		inv := eh.inv[massCoeff]
		eh.forEachElement(func(k int) {
			rhs := eh.Mk[k].Mul(F.Col(k).ToMatrix())
			U.SetCol(k, inv[k].Mul(rhs).DataP)
		})
	case IterativeSolve:
		b := utils.NewBlockVector(el.K, el.Np, 1)
		eh.forEachElement(func(k int) {
			rhs := eh.Mk[k].Mul(F.Col(k).ToMatrix())
			copy(b.GetBlockView(k, 0).DataP, rhs.DataP)
		})
		maxIter := el.Np * el.K
		if maxIter > 200 {
			maxIter = 200
		}
		x := eh.sys[massCoeff].GMRES(b, 1.e-12, maxIter)
		for k := 0; k < el.K; k++ {
			U.SetCol(k, x.GetBlockView(k, 0).DataP)
		}
	}
	return
}

// SolvePoisson solves the pure stiffness problem S u = M f. The constant mode
// of each element is projected out of the right hand side and pinned by a
// small mass shift, fixing the element mean of the solution at zero
func (eh *ElementHelmholtz) SolvePoisson(F utils.Matrix) (U utils.Matrix) {
	var (
		el = eh.El
		Fm = F.Copy()
	)
	B := el.IProductWRTBase(F)
	for k := 0; k < el.K; k++ {
		var fInt float64
		for i := 0; i < el.Np; i++ {
			fInt += B.At(i, k)
		}
		mean := fInt / eh.vol[k]
		for i := 0; i < el.Np; i++ {
			Fm.Set(i, k, Fm.At(i, k)-mean)
		}
	}
	U = eh.Solve(pressurePin, Fm)
	return
}
