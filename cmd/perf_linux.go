//go:build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// runPerf runs the solver body, optionally under a hardware instruction
// counter. The counter covers the whole solve including startup
func runPerf(enabled bool, run func()) {
	if !enabled {
		run()
		return
	}
	pv, err := perf.CPUInstructions(func() error {
		run()
		return nil
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("CPU instructions retired = %d\n", pv.Value)
}
