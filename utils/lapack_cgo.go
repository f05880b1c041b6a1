//go:build cgo
// +build cgo

package utils

/*
#cgo CFLAGS: -march=native -mavx -mavx2
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
#include <cblas.h>
#include <lapacke.h>
*/
import "C"

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	netblas "gonum.org/v1/netlib/blas/netlib"
	netlapack "gonum.org/v1/netlib/lapack/netlib"
)

// The element Helmholtz factorizations run through lapack64, so both the
// BLAS and LAPACK backends are swapped for the netlib bindings when cgo is
// available
func init() {
	blas64.Use(netblas.Implementation{})
	lapack64.Use(netlapack.Implementation{})
	fmt.Println("Using netlib to accelerate BLAS and LAPACK")
}
