package IncNS2D

import (
	"fmt"
	"os"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/utils"
)

// A Filter observes the session fields as the solve advances. Update runs on
// the output cadence with the fields in coefficient space, Initialise and
// Finalise bracket the solve.
type Filter interface {
	Initialise(fields []*DG2D.Field, time float64) error
	Update(fields []*DG2D.Field, time float64) error
	Finalise(fields []*DG2D.Field, time float64) error
}

/*
HistoryPointsFilter samples every session field at a fixed set of physical
points and appends one line per update to the session .his file. Points are
located once at initialisation, each resolved to its containing element and a
modal evaluation row, so an update is a dot product per point and field.
Element location uses the straight sided vertex map.
*/
type HistoryPointsFilter struct {
	SessionName string
	El          *DG2D.Elements2D
	Points      [][2]float64
	elems       []int
	interp      []utils.Matrix
	file        *os.File
}

func NewHistoryPointsFilter(sessionName string, el *DG2D.Elements2D,
	points [][2]float64) (hp *HistoryPointsFilter) {
	hp = &HistoryPointsFilter{
		SessionName: sessionName,
		El:          el,
		Points:      points,
	}
	return
}

func (hp *HistoryPointsFilter) Initialise(fields []*DG2D.Field, time float64) (err error) {
	var (
		el = hp.El
	)
	hp.elems = make([]int, len(hp.Points))
	hp.interp = make([]utils.Matrix, len(hp.Points))
	for n, pt := range hp.Points {
		k, r, s, ok := locatePoint(el, pt[0], pt[1])
		if !ok {
			return fmt.Errorf("history point %d at (%g, %g) is outside the mesh", n, pt[0], pt[1])
		}
		hp.elems[n] = k
		R := utils.NewVector(1, []float64{r})
		S := utils.NewVector(1, []float64{s})
		hp.interp[n] = DG2D.Vandermonde2D(el.N, R, S)
	}
	if hp.file, err = os.Create(hp.SessionName + ".his"); err != nil {
		return
	}
	for n, pt := range hp.Points {
		fmt.Fprintf(hp.file, "# point %d: (%g, %g) in element %d\n", n, pt[0], pt[1], hp.elems[n])
	}
	fmt.Fprintf(hp.file, "# time")
	for n := range hp.Points {
		for _, fld := range fields {
			fmt.Fprintf(hp.file, " %s[%d]", fld.Name, n)
		}
	}
	fmt.Fprintf(hp.file, "\n")
	return
}

func (hp *HistoryPointsFilter) Update(fields []*DG2D.Field, time float64) (err error) {
	var (
		el = hp.El
	)
	fmt.Fprintf(hp.file, "%16.8e", time)
	for n := range hp.Points {
		var (
			k   = hp.elems[n]
			row = hp.interp[n].DataP
		)
		for _, fld := range fields {
			C := fld.GetCoeffs()
			var val float64
			for m := 0; m < el.Np; m++ {
				val += row[m] * C.At(m, k)
			}
			fmt.Fprintf(hp.file, " %16.8e", val)
		}
	}
	fmt.Fprintf(hp.file, "\n")
	return
}

func (hp *HistoryPointsFilter) Finalise(fields []*DG2D.Field, time float64) (err error) {
	if hp.file == nil {
		return
	}
	err = hp.file.Close()
	hp.file = nil
	return
}

/*
locatePoint finds the element containing (x, y) and the reference coordinates
of the point within it by inverting the affine vertex map,
	x = 0.5 * (-(r+s) x1 + (1+r) x2 + (1+s) x3)
Containment is tested on the barycentric coordinates with the mesh node
tolerance, so points on element boundaries resolve to the first owner.
*/
func locatePoint(el *DG2D.Elements2D, x, y float64) (k int, r, s float64, found bool) {
	var (
		tol = el.NODETOL
	)
	for k = 0; k < el.K; k++ {
		var (
			v1, v2, v3 = int(el.EToV.At(k, 0)), int(el.EToV.At(k, 1)), int(el.EToV.At(k, 2))
			x1, y1     = el.VX.DataP[v1], el.VY.DataP[v1]
			a, c       = 0.5 * (el.VX.DataP[v2] - x1), 0.5 * (el.VY.DataP[v2] - y1)
			b, d       = 0.5 * (el.VX.DataP[v3] - x1), 0.5 * (el.VY.DataP[v3] - y1)
			det        = a*d - b*c
			dx, dy     = x - x1, y - y1
		)
		rp := (d*dx - b*dy) / det
		sp := (a*dy - c*dx) / det
		l2, l3 := 0.5*rp, 0.5*sp
		l1 := 1. - l2 - l3
		if l1 >= -tol && l2 >= -tol && l3 >= -tol {
			r, s = rp-1., sp-1.
			found = true
			return
		}
	}
	return
}
