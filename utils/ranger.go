package utils

import (
	"strconv"
	"strings"
)

/*
R1 and R2 convert Matlab style index phrases into flat Index slices over
row-major storage. A phrase is one of

	":"    the full dimension
	"end"  the last entry
	"N" or N  the single entry N
	"2:N", ":N", "N:"  half open ranges in loop convention

Phrases are resolved against the dimension size at call time, so the same
phrase can address matrices of different shape.
*/
type R1 struct {
	Max int
}

func NewR1(imax int) R1 {
	return R1{imax}
}

func (r R1) Range(dimI interface{}) Index {
	i1, i2 := ParseDim(dimI, r.Max)
	return NewRange(i1, i2)
}

type R2 struct {
	Ir, Jr R1
}

func NewR2(imax, jmax int) R2 {
	return R2{
		NewR1(imax),
		NewR1(jmax),
	}
}

func (r R2) Range(dimI, dimJ interface{}) (I Index) {
	var (
		i1, i2 = ParseDim(dimI, r.Ir.Max)
		j1, j2 = ParseDim(dimJ, r.Jr.Max)
		nj     = r.Jr.Max
	)
	I = NewIndex((i2 - i1) * (j2 - j1))
	var ind int
	for j := j1; j < j2; j++ {
		for i := i1; i < i2; i++ {
			I[ind] = j + nj*i
			ind++
		}
	}
	return
}

// ParseDim resolves one phrase to the half open range [i1, i2)
func ParseDim(dimI interface{}, max int) (i1, i2 int) {
	switch dim := dimI.(type) {
	case string:
		switch dim {
		case "end":
			i1, i2 = max-1, max
		case ":":
			i1, i2 = 0, max
		default:
			i1, i2 = parseRange(dim, max)
		}
	case int:
		i1, i2 = dim, dim+1
	}
	return
}

func parseRange(dim string, max int) (i1, i2 int) {
	var (
		splits = strings.Split(dim, ":")
		err    error
	)
	if i1, err = strconv.Atoi(splits[0]); err != nil {
		i1 = 0
	}
	if len(splits) == 1 {
		// A bare number addresses the single entry
		i2 = i1 + 1
		return
	}
	if i2, err = strconv.Atoi(splits[1]); err != nil {
		i2 = max
	}
	if i2 == i1 {
		i2 = i1 + 1
	}
	return
}
