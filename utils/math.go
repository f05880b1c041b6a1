package utils

import "math"

func ConstArray(val float64, N int) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// POW is an integer power. Small exponents, the common case in basis and
// geometric factor evaluations, multiply out directly
func POW(x float64, p int) (y float64) {
	if p > 8 || p < -8 {
		return math.Pow(x, float64(p))
	}
	n := p
	if n < 0 {
		n = -n
	}
	y = 1
	for i := 0; i < n; i++ {
		y *= x
	}
	if p < 0 {
		y = 1 / y
	}
	return
}
