package IncNS2D

import (
	"fmt"
	"time"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/geometry2D"
	"github.com/notargets/incflow/utils"
)

/*
FieldPlotFilter renders one session field as a live colored surface while the
solve runs. The graphics mesh sub triangulates the nodal points of every
element once at initialisation, frames then reuse it with the current point
values. The color range autoscales per frame.
*/
type FieldPlotFilter struct {
	El        *DG2D.Elements2D
	FieldName string
	Steps     int
	Delay     time.Duration
	fieldIdx  int
	count     int
	plot      *utils.SurfacePlot
}

func NewFieldPlotFilter(el *DG2D.Elements2D, fieldName string, steps int,
	delay time.Duration) (fp *FieldPlotFilter) {
	if steps <= 0 {
		steps = 1
	}
	fp = &FieldPlotFilter{
		El:        el,
		FieldName: fieldName,
		Steps:     steps,
		Delay:     delay,
	}
	return
}

func (fp *FieldPlotFilter) Initialise(fields []*DG2D.Field, t float64) (err error) {
	var (
		el = fp.El
	)
	fp.fieldIdx = -1
	for i, fld := range fields {
		if fld.Name == fp.FieldName {
			fp.fieldIdx = i
		}
	}
	if fp.fieldIdx < 0 {
		return fmt.Errorf("unable to plot field %s, not a session variable", fp.FieldName)
	}
	gm := geometry2D.NodalTriMesh(el.R, el.S, el.X, el.Y)
	var (
		xmin, xmax = el.X.Min(), el.X.Max()
		ymin, ymax = el.Y.Min(), el.Y.Max()
		marginX    = 0.05 * (xmax - xmin)
		marginY    = 0.05 * (ymax - ymin)
	)
	fp.plot = utils.NewSurfacePlot(1280, 1280,
		xmin-marginX, xmax+marginX, ymin-marginY, ymax+marginY, &gm)
	fp.render(fields)
	return
}

func (fp *FieldPlotFilter) Update(fields []*DG2D.Field, t float64) (err error) {
	fp.count++
	if fp.count%fp.Steps != 0 {
		return
	}
	fp.render(fields)
	return
}

func (fp *FieldPlotFilter) Finalise(fields []*DG2D.Field, t float64) (err error) {
	return
}

func (fp *FieldPlotFilter) render(fields []*DG2D.Field) {
	fld := fields[fp.fieldIdx]
	if !fld.PhysState() {
		fld.BwdTrans()
	}
	var (
		P     = fld.GetPhys()
		Np, K = P.Dims()
		vals  = make([]float32, Np*K)
	)
	for k := 0; k < K; k++ {
		for i := 0; i < Np; i++ {
			vals[k*Np+i] = float32(P.At(i, k))
		}
	}
	fmin, fmax := P.Min(), P.Max()
	if fmax-fmin < 1.e-10 {
		fmax = fmin + 1.e-10
	}
	fp.plot.AddColorMap(fmin, fmax)
	fp.plot.AddFunctionSurface(vals)
	time.Sleep(fp.Delay)
}
