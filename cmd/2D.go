/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/notargets/incflow/DG2D"
	"github.com/notargets/incflow/InputParameters"
	"github.com/notargets/incflow/geometry2D"
	"github.com/notargets/incflow/readfiles"

	"github.com/notargets/incflow/model_problems/IncNS2D"

	"github.com/spf13/cobra"
)

type Model2D struct {
	GridFile    string
	ICFile      string
	RestartFile string
	MeshGen     int
	ProcLimit   int
	Graph       bool
	GraphField  string
	PlotMesh    bool
	PlotSteps   int
	Delay       time.Duration
	Profile     bool
	Perf        bool
}

// TwoDCmd solves the incompressible Navier-Stokes equations in two dimensions
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional incompressible flow solver on unstructured triangle meshes",
	Long:  `Two dimensional incompressible flow solver on unstructured triangle meshes, reads Gambit and SU2 grid files and writes checkpoint solutions`,
	Run: func(cmd *cobra.Command, args []string) {
		m2d := modelFromFlags(cmd)
		ip := processInput(m2d)
		Run2D(m2d, ip)
	},
}

func modelFromFlags(cmd *cobra.Command) (m2d *Model2D) {
	m2d = &Model2D{}
	f := cmd.Flags()
	m2d.GridFile, _ = f.GetString("gridFile")
	m2d.ICFile, _ = f.GetString("inputConditionsFile")
	m2d.RestartFile, _ = f.GetString("restartFile")
	m2d.MeshGen, _ = f.GetInt("meshGen")
	m2d.ProcLimit, _ = f.GetInt("procLimit")
	m2d.Graph, _ = f.GetBool("graph")
	m2d.GraphField, _ = f.GetString("graphField")
	m2d.PlotMesh, _ = f.GetBool("plotMesh")
	m2d.PlotSteps, _ = f.GetInt("plotSteps")
	delayMS, _ := f.GetInt("delay")
	m2d.Delay = time.Duration(delayMS) * time.Millisecond
	m2d.Profile, _ = f.GetBool("profile")
	m2d.Perf, _ = f.GetBool("perf")
	return
}

const exampleInputFile = `
########################################
Title: "Test Case"
Equation: UnsteadyNavierStokes # Can be "Stokes", "Oseen", "LinearisedNavierStokes"
Kinvis: 0.025
PolynomialOrder: 4
TimeStep: 0.001
NumSteps: 1000
TimeIntOrder: 2
Variables: [u, v, p]
IO_InfoSteps: 10
IO_CheckSteps: 100
########################################
`

func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D) {
	var (
		exit bool
	)
	if len(m2d.GridFile) == 0 && m2d.MeshGen == 0 {
		fmt.Println("error: need a grid file (-F, --gridFile) in Gambit .neu or SU2 .su2 format, or --meshGen to build one")
		exit = true
	}
	if len(m2d.ICFile) == 0 {
		fmt.Println("error: need an input parameters file (-I, --inputConditionsFile) in YAML format, for example:")
		fmt.Println(exampleInputFile)
		exit = true
	}
	if exit {
		os.Exit(1)
	}
	data, err := os.ReadFile(m2d.ICFile)
	if err != nil {
		panic(err)
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("gridFile", "F", "", "grid file to read, Gambit .neu or SU2 .su2 format")
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file of run parameters, run without it to print an example")
	TwoDCmd.Flags().StringP("restartFile", "R", "", "checkpoint file (.chk) to restart the solution from")
	TwoDCmd.Flags().Int("meshGen", 0, "generate an NxN unit square mesh instead of reading a grid file")
	TwoDCmd.Flags().IntP("procLimit", "p", 0, "limit the number of goroutines used for parallel element work")
	TwoDCmd.Flags().BoolP("graph", "g", false, "display a live plot of a solution field while computing")
	TwoDCmd.Flags().StringP("graphField", "q", "u", "which field should be displayed while graphing")
	TwoDCmd.Flags().Bool("plotMesh", false, "display the mesh with boundary tags before solving")
	TwoDCmd.Flags().IntP("plotSteps", "s", 1, "steps between plotted frames")
	TwoDCmd.Flags().IntP("delay", "d", 0, "milliseconds to pause after each plotted frame")
	TwoDCmd.Flags().Bool("profile", false, "write a CPU profile of the solver run")
	TwoDCmd.Flags().Bool("perf", false, "report hardware instruction counts for the solver run (linux only)")
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParameters2D) {
	if m2d.Profile {
		defer profile.Start().Stop()
	}
	var c *IncNS2D.INS
	if m2d.MeshGen > 0 {
		VX, VY, EToV, BCEdges := geometry2D.SquareMesh(m2d.MeshGen)
		el := DG2D.NewElements2DFromMesh(ip.PolynomialOrder, VX, VY, EToV, BCEdges)
		c = IncNS2D.NewINSFromElements(ip, el, m2d.ProcLimit, true)
	} else {
		c = IncNS2D.NewINS(ip, m2d.GridFile, m2d.ProcLimit, true)
	}
	if len(m2d.RestartFile) != 0 {
		if err := c.Restart(m2d.RestartFile); err != nil {
			panic(err)
		}
	}
	if m2d.PlotMesh {
		readfiles.PlotMesh(c.El.VX, c.El.VY, c.El.EToV, c.El.X, c.El.Y, c.El.BCEdges, true)
	}
	if m2d.Graph {
		if c.Hom != nil {
			fmt.Println("live field plotting of a homogeneous run is not supported")
		} else {
			c.AddFilter(IncNS2D.NewFieldPlotFilter(c.El, m2d.GraphField, m2d.PlotSteps, m2d.Delay))
		}
	}
	runPerf(m2d.Perf, c.Solve)
}
