package utils

import (
	"image/color"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/functions"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
)

// SurfacePlot is a live colored surface over a fixed triangle mesh, one frame
// per call to AddFunctionSurface. The chart runs on its own goroutine
type SurfacePlot struct {
	Chart        *chart2d.Chart2D
	ColorMap     *utils2.ColorMap
	GraphicsMesh *graphics2D.TriMesh
}

func NewSurfacePlot(width, height int, xmin, xmax, ymin, ymax float64,
	gm *graphics2D.TriMesh) (sp *SurfacePlot) {
	sp = &SurfacePlot{
		Chart:        chart2d.NewChart2D(width, height, float32(xmin), float32(xmax), float32(ymin), float32(ymax)),
		GraphicsMesh: gm,
	}
	go sp.Chart.Plot()
	return
}

// AddColorMap rescales the color range, called per frame to autoscale
func (sp *SurfacePlot) AddColorMap(fmin, fmax float64) {
	sp.ColorMap = utils2.NewColorMap(float32(fmin), float32(fmax), 1.)
	sp.Chart.AddColorMap(sp.ColorMap)
}

// AddFunctionSurface renders one frame of field values, indexed to match the
// graphics mesh geometry
func (sp *SurfacePlot) AddFunctionSurface(field []float32) {
	var (
		white = color.RGBA{R: 255, G: 255, B: 255, A: 1}
	)
	fs := functions.NewFSurface(sp.GraphicsMesh, [][]float32{field}, 0)
	if err := sp.Chart.AddFunctionSurface("FSurface", *fs, chart2d.NoLine, white); err != nil {
		panic("cannot add surface series to chart")
	}
}
