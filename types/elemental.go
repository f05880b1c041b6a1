package types

import (
	"fmt"
	"math"
)

/*
EdgeKey identifies an undirected mesh edge by its two vertex ids packed into
one uint64, the smaller id in the low word. Both orientations of an edge
produce the same key, so the key works as a map hash for edge matching.
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	lo, hi := verts[0], verts[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 || hi > math.MaxUint32 {
		panic(fmt.Errorf("vertex ids %d and %d do not fit a packed edge key",
			verts[0], verts[1]))
	}
	packed = EdgeKey(uint64(lo) | uint64(hi)<<32)
	return
}

// GetVertices unpacks the vertex pair, ascending unless rev is set
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts[0] = int(uint64(ek) & math.MaxUint32)
	verts[1] = int(uint64(ek) >> 32)
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

/*
EdgeInt stores the same packed vertex pair in an int64 whose sign carries the
traversal direction, negative when the vertices arrived in descending order.
The magnitude is orientation free, so the canonical key is recoverable while
the original direction survives for boundary edges.
*/
type EdgeInt int64

func NewEdgeInt(verts [2]int) (packed EdgeInt) {
	lo, hi := verts[0], verts[1]
	descending := lo > hi
	if descending {
		lo, hi = hi, lo
	}
	// One bit of the top word is spent on the sign
	if lo < 0 || hi > math.MaxUint32>>1 {
		panic(fmt.Errorf("vertex ids %d and %d do not fit a directed packed edge",
			verts[0], verts[1]))
	}
	packed = EdgeInt(int64(lo) | int64(hi)<<32)
	if descending {
		packed = -packed
	}
	return
}

// GetVertices unpacks the vertex pair in its original traversal order
func (e EdgeInt) GetVertices() (verts [2]int) {
	m := int64(e)
	descending := m < 0
	if descending {
		m = -m
	}
	verts[0] = int(m & math.MaxUint32)
	verts[1] = int(m >> 32)
	if descending {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// GetKey drops the direction, giving the undirected edge key
func (e EdgeInt) GetKey() (ek EdgeKey) {
	ek = NewEdgeKey(e.GetVertices())
	return
}
