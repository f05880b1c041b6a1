package utils

import (
	"fmt"
	"math"
	"runtime"
)

// GetMemUsage reports the allocator state in one line for run summaries
func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc %v MiB, TotalAlloc %v MiB, Sys %v MiB, NumGC %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

func IsNanPanic(A any) {
	if IsNan(A) {
		panic("NaN in solver storage")
	}
}

func IsNan(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsNaN(v)
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) {
				return true
			}
		}
	case Vector:
		return IsNan(v.DataP)
	case Matrix:
		return IsNan(v.DataP)
	case []Matrix:
		for n := range v {
			if IsNan(v[n].DataP) {
				return true
			}
		}
	}
	return false
}
