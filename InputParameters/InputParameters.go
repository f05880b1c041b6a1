package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// InputParameters2D is the YAML run configuration for the 2D solver
type InputParameters2D struct {
	Title             string                                `yaml:"Title"`
	Equation          string                                `yaml:"Equation"`
	PolynomialOrder   int                                   `yaml:"PolynomialOrder"`
	Kinvis            float64                               `yaml:"Kinvis"`
	TimeStep          float64                               `yaml:"TimeStep"`
	NumSteps          int                                   `yaml:"NumSteps"`
	TimeIntOrder      int                                   `yaml:"TimeIntOrder"`
	Variables         []string                              `yaml:"Variables"`
	IO_InfoSteps      int                                   `yaml:"IO_InfoSteps"`
	IO_CheckSteps     int                                   `yaml:"IO_CheckSteps"`
	IO_EnergySteps    int                                   `yaml:"IO_EnergySteps"`
	SteadyStateSteps  int                                   `yaml:"SteadyStateSteps"`
	SteadyStateTol    float64                               `yaml:"SteadyStateTol"`
	SubStepping       bool                                  `yaml:"SubStepping"`
	SubStepCFL        float64                               `yaml:"SubStepCFL"`
	MinSubSteps       int                                   `yaml:"MinSubSteps"`
	BodyForce         []float64                             `yaml:"BodyForce"`
	HomogeneousType   string                                `yaml:"Homogeneous" json:"Homogeneous"`
	HomModesZ         int                                   `yaml:"HomModesZ"`
	LZ                float64                               `yaml:"LZ"`
	GlobalSysSoln     string                                `yaml:"GlobalSysSoln"`
	ViscoElasticModel string                                `yaml:"ViscoElasticModel"`
	RelaxationTime    float64                               `yaml:"RelaxationTime"`
	PolymerViscosity  float64                               `yaml:"PolymerViscosity"`
	MobilityAlpha     float64                               `yaml:"MobilityAlpha"`
	ScalarDiffusivity float64                               `yaml:"ScalarDiffusivity"`
	HistoryPoints     [][2]float64                          `yaml:"HistoryPoints"`
	BCs               map[string]map[int]map[string]float64 `yaml:"BCs"` // Keyed by BC tag, then boundary group id, then parameter name
}

func (ip *InputParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Print echoes the run parameters to the console using the YAML key names
func (ip *InputParameters2D) Print() {
	fmt.Printf("Title:           %q\n", ip.Title)
	fmt.Printf("Equation:        %s\n", ip.Equation)
	fmt.Printf("PolynomialOrder: %d\n", ip.PolynomialOrder)
	fmt.Printf("Kinvis:          %8.5f\n", ip.Kinvis)
	fmt.Printf("TimeStep:        %8.5f\n", ip.TimeStep)
	fmt.Printf("NumSteps:        %d\n", ip.NumSteps)
	fmt.Printf("TimeIntOrder:    %d\n", ip.TimeIntOrder)
	fmt.Printf("Variables:       %v\n", ip.Variables)
	if ip.SubStepping {
		fmt.Printf("SubStepCFL:      %8.5f\n", ip.SubStepCFL)
		fmt.Printf("MinSubSteps:     %d\n", ip.MinSubSteps)
	}
	if ip.HomogeneousType != "" {
		fmt.Printf("Homogeneous:     %s\n", ip.HomogeneousType)
		fmt.Printf("HomModesZ:       %d\n", ip.HomModesZ)
		fmt.Printf("LZ:              %8.5f\n", ip.LZ)
	}
	keys := make([]string, 0, len(ip.BCs))
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s]: %v\n", key, ip.BCs[key])
	}
}
