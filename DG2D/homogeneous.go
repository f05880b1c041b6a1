package DG2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/notargets/incflow/utils"
)

/*
Homogeneous1D extends the 2D expansion in a third, spectrally homogeneous
direction. The solution lives on NZ identical planes spanning a periodic
length LZ, coupled by a Fourier expansion in z. In wave space the planes are
paired, plane 2m holding the real part and plane 2m+1 the imaginary part of
Fourier mode m for m = 0 .. NZ/2-1. The Nyquist mode is discarded by the
forward transform, which makes the transform pair exact only for content
below it.
*/
type Homogeneous1D struct {
	El  *Elements2D
	NZ  int
	LZ  float64
	fft *fourier.FFT
}

func NewHomogeneous1D(el *Elements2D, NZ int, LZ float64) (hom *Homogeneous1D) {
	if NZ < 2 || NZ%2 != 0 {
		panic(fmt.Errorf("homogeneous plane count must be even and at least 2, have %d", NZ))
	}
	if LZ <= 0 {
		panic(fmt.Errorf("homogeneous length must be positive, have %g", LZ))
	}
	hom = &Homogeneous1D{
		El:  el,
		NZ:  NZ,
		LZ:  LZ,
		fft: fourier.NewFFT(NZ),
	}
	return
}

func (hom *Homogeneous1D) NumModes() int { return hom.NZ / 2 }

// Beta returns the z wavenumber of Fourier mode m
func (hom *Homogeneous1D) Beta(m int) float64 {
	return 2. * math.Pi * float64(m) / hom.LZ
}

// PlaneZ returns the z coordinate of physical plane index z
func (hom *Homogeneous1D) PlaneZ(z int) float64 {
	return hom.LZ * float64(z) / float64(hom.NZ)
}

/*
HomoField is a named unknown on the homogeneous plane stack. Planes holds one
Np x K matrix of point values per z location in physical space; in wave space
the same storage holds the mode pairs.
*/
type HomoField struct {
	Name      string
	Hom       *Homogeneous1D
	Planes    []utils.Matrix
	WaveSpace bool
}

func (hom *Homogeneous1D) NewHomoField(name string) (fld *HomoField) {
	fld = &HomoField{
		Name:   name,
		Hom:    hom,
		Planes: make([]utils.Matrix, hom.NZ),
	}
	for i := range fld.Planes {
		fld.Planes[i] = utils.NewMatrix(hom.El.Np, hom.El.K)
	}
	return
}

// HomogeneousFwdTrans moves the field into wave space. Each solution point
// carries an NZ sample line in z that transforms independently, scaled by
// 1/NZ so that mode 0 holds the z average
func (fld *HomoField) HomogeneousFwdTrans() {
	var (
		hom   = fld.Hom
		NZ    = hom.NZ
		npts  = hom.El.Np * hom.El.K
		seq   = make([]float64, NZ)
		coeff = make([]complex128, NZ/2+1)
		scale = 1. / float64(NZ)
	)
	if fld.WaveSpace {
		panic(fmt.Errorf("field %s is already in wave space", fld.Name))
	}
	for p := 0; p < npts; p++ {
		for z := 0; z < NZ; z++ {
			seq[z] = fld.Planes[z].DataP[p]
		}
		hom.fft.Coefficients(coeff, seq)
		for m := 0; m < NZ/2; m++ {
			fld.Planes[2*m].DataP[p] = scale * real(coeff[m])
			fld.Planes[2*m+1].DataP[p] = scale * imag(coeff[m])
		}
	}
	fld.WaveSpace = true
}

// HomogeneousBwdTrans returns the field to physical space. The gonum inverse
// is unnormalized, so together with the forward scaling the round trip is
// the identity below the Nyquist mode
func (fld *HomoField) HomogeneousBwdTrans() {
	var (
		hom   = fld.Hom
		NZ    = hom.NZ
		npts  = hom.El.Np * hom.El.K
		seq   = make([]float64, NZ)
		coeff = make([]complex128, NZ/2+1)
	)
	if !fld.WaveSpace {
		panic(fmt.Errorf("field %s is already in physical space", fld.Name))
	}
	for p := 0; p < npts; p++ {
		for m := 0; m < NZ/2; m++ {
			coeff[m] = complex(fld.Planes[2*m].DataP[p], fld.Planes[2*m+1].DataP[p])
		}
		coeff[NZ/2] = 0
		hom.fft.Sequence(seq, coeff)
		for z := 0; z < NZ; z++ {
			fld.Planes[z].DataP[p] = seq[z]
		}
	}
	fld.WaveSpace = false
}

// ModeEnergy returns half the plane integral of the squared amplitude of
// Fourier mode m
func (fld *HomoField) ModeEnergy(m int) (energy float64) {
	var (
		hom = fld.Hom
		el  = hom.El
	)
	if !fld.WaveSpace {
		panic(fmt.Errorf("field %s: mode energy requires wave space", fld.Name))
	}
	re, im := fld.Planes[2*m], fld.Planes[2*m+1]
	energy = 0.5 * (el.Integrate(re.Copy().ElMul(re)) + el.Integrate(im.Copy().ElMul(im)))
	return
}

// SetConstantInZ fills every plane with the same point values, the form a
// steady body force takes before transforming to wave space
func (fld *HomoField) SetConstantInZ(U utils.Matrix) {
	for z := range fld.Planes {
		copy(fld.Planes[z].DataP, U.DataP)
	}
	fld.WaveSpace = false
}
