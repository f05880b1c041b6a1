//go:build !linux

package cmd

import "fmt"

// runPerf degrades to a plain run where hardware counters are unavailable
func runPerf(enabled bool, run func()) {
	if enabled {
		fmt.Println("hardware counter profiling is only available on linux")
	}
	run()
}
