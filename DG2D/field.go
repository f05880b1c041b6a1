package DG2D

import (
	"fmt"

	"github.com/notargets/incflow/utils"
)

/*
A Field is one named unknown on the mesh. It carries both representations of
the solution, point values at the element nodes (Phys) and modal coefficients
(Coeffs), each Np x K with one column per element, together with a validity
flag per representation. The transforms move data between the two sides and
reading a stale side panics, as that indicates a sequencing error in the
caller.
*/
type Field struct {
	Name        string
	El          *Elements2D
	Phys        utils.Matrix // Np x K point values
	Coeffs      utils.Matrix // Np x K modal coefficients
	PhysValid   bool
	CoeffsValid bool
}

func NewField(el *Elements2D, name string) (fld *Field) {
	fld = &Field{
		Name:      name,
		El:        el,
		Phys:      utils.NewMatrix(el.Np, el.K),
		Coeffs:    utils.NewMatrix(el.Np, el.K),
		PhysValid: true,
	}
	return
}

// Counts of the expansion underlying the field
func (fld *Field) GetNelements() int { return fld.El.K }
func (fld *Field) GetNpoints() int   { return fld.El.Np * fld.El.K }
func (fld *Field) GetNcoeffs() int   { return fld.El.Np * fld.El.K }

// GetPhys returns the point values, panicking if they are stale
func (fld *Field) GetPhys() utils.Matrix {
	if !fld.PhysValid {
		panic(fmt.Errorf("field %s: physical values are stale, needs BwdTrans", fld.Name))
	}
	return fld.Phys
}

// GetCoeffs returns the modal coefficients, panicking if they are stale
func (fld *Field) GetCoeffs() utils.Matrix {
	if !fld.CoeffsValid {
		panic(fmt.Errorf("field %s: coefficients are stale, needs FwdTrans", fld.Name))
	}
	return fld.Coeffs
}

// UpdatePhys returns the point value storage for in place modification and
// marks the coefficient side stale
func (fld *Field) UpdatePhys() utils.Matrix {
	fld.PhysValid = true
	fld.CoeffsValid = false
	return fld.Phys
}

// UpdateCoeffs returns the coefficient storage for in place modification and
// marks the point value side stale
func (fld *Field) UpdateCoeffs() utils.Matrix {
	fld.CoeffsValid = true
	fld.PhysValid = false
	return fld.Coeffs
}

// SetPhys stores U as the point values without copying it
func (fld *Field) SetPhys(U utils.Matrix) {
	fld.Phys = U
	fld.PhysValid = true
	fld.CoeffsValid = false
}

// SetCoeffs stores Uhat as the modal coefficients without copying it
func (fld *Field) SetCoeffs(Uhat utils.Matrix) {
	fld.Coeffs = Uhat
	fld.CoeffsValid = true
	fld.PhysValid = false
}

func (fld *Field) SetPhysState(valid bool) { fld.PhysValid = valid }
func (fld *Field) PhysState() bool         { return fld.PhysValid }

// FwdTrans refreshes the modal coefficients from the point values
func (fld *Field) FwdTrans() {
	fld.Coeffs = fld.El.FwdTrans(fld.GetPhys())
	fld.CoeffsValid = true
}

// BwdTrans refreshes the point values from the modal coefficients
func (fld *Field) BwdTrans() {
	fld.Phys = fld.El.BwdTrans(fld.GetCoeffs())
	fld.PhysValid = true
}

// GetFwdBwdTracePhys extracts the two sided face traces of the point values
func (fld *Field) GetFwdBwdTracePhys() (Fwd, Bwd utils.Matrix) {
	return fld.El.GetFwdBwdTracePhys(fld.GetPhys())
}

// CoeffsNormSq returns the sum of the squared modal coefficients
func (fld *Field) CoeffsNormSq() (l2 float64) {
	for _, c := range fld.GetCoeffs().DataP {
		l2 += c * c
	}
	return
}

// FwdTrans transforms nodal point values to modal coefficients. The transform
// is exact for polynomials of the element order
func (el *Elements2D) FwdTrans(U utils.Matrix) (Uhat utils.Matrix) {
	Uhat = el.Vinv.Mul(U)
	return
}

// BwdTrans evaluates modal coefficients at the element nodes
func (el *Elements2D) BwdTrans(Uhat utils.Matrix) (U utils.Matrix) {
	U = el.V.Mul(Uhat)
	return
}

// IProductWRTBase computes the inner product of the point values F with every
// basis function over the physical elements,
//	B = M (J o F)
// where M is the reference element mass matrix. Does not change F
func (el *Elements2D) IProductWRTBase(F utils.Matrix) (B utils.Matrix) {
	B = el.MassMatrix.Mul(F.Copy().ElMul(el.J))
	return
}

// MultiplyByElmtInvMass inverts the weighted mass matrix applied by
// IProductWRTBase. Does not change B
func (el *Elements2D) MultiplyByElmtInvMass(B utils.Matrix) (F utils.Matrix) {
	F = el.MassInv.Mul(B).ElDiv(el.J)
	return
}

// PhysDeriv differentiates the point values in physical x and y using the
// chain rule through the reference coordinates
func (el *Elements2D) PhysDeriv(U utils.Matrix) (Ux, Uy utils.Matrix) {
	var (
		Ur = el.Dr.Mul(U)
		Us = el.Ds.Mul(U)
	)
	Ux = el.Rx.Copy().ElMul(Ur).Add(el.Sx.Copy().ElMul(Us))
	Uy = el.Ry.Copy().ElMul(Ur).Add(el.Sy.Copy().ElMul(Us))
	return
}

// Integrate returns the integral of the point values U over the whole mesh
func (el *Elements2D) Integrate(U utils.Matrix) (integral float64) {
	for _, v := range el.IProductWRTBase(U).DataP {
		integral += v
	}
	return
}

// GetFwdBwdTracePhys extracts the interior (Fwd) and neighboring (Bwd) values
// of U on every element face, laid out NFacePts x K to match the face normals
// and surface Jacobian. On boundary faces Bwd repeats Fwd until a boundary
// condition overwrites it
func (el *Elements2D) GetFwdBwdTracePhys(U utils.Matrix) (Fwd, Bwd utils.Matrix) {
	var (
		NFacePts = el.Nfp * el.NFaces
	)
	Fwd = U.Subset(el.VmapM, NFacePts, el.K)
	Bwd = U.Subset(el.VmapP, NFacePts, el.K)
	return
}

// Upwind selects the trace value carried by the advecting velocity, the
// interior value where Vn is outgoing and the neighboring value where it is
// incoming. Does not change its arguments
func (el *Elements2D) Upwind(Fwd, Bwd, Vn utils.Matrix) (Flx utils.Matrix) {
	Flx = Fwd.Copy()
	for i, vn := range Vn.DataP {
		if vn < 0 {
			Flx.DataP[i] = Bwd.DataP[i]
		}
	}
	return
}

// AddTraceIntegral accumulates the surface integral of the face flux against
// the volume basis,
//	Out += E (sJ o Flx)
// Flx holds the flux seen from inside each element in the trace layout, so
// both sides of every interior face enter through their owning columns
func (el *Elements2D) AddTraceIntegral(Flx, Out utils.Matrix) {
	Out.Add(el.Emat.Mul(Flx.Copy().ElMul(el.sJ)))
}

// NormalVelocity projects the trace velocities onto the outward face normals
func (el *Elements2D) NormalVelocity(UTrace, VTrace utils.Matrix) (Vn utils.Matrix) {
	Vn = el.NX.Copy().ElMul(UTrace).Add(el.NY.Copy().ElMul(VTrace))
	return
}
