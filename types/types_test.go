package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Vertex pair packed into one int
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))

		en = NewEdgeKey([2]int{100, 100001})
		assert.Equal(t, EdgeKey(100001*(1<<32)+100), en)
		assert.Equal(t, [2]int{100, 100001}, en.GetVertices(false))

		// Extremes of the vertex id range
		en = NewEdgeKey([2]int{1, 1<<32 - 1})
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), en)
		assert.Equal(t, [2]int{1, 1<<32 - 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{1<<32 - 1, 1<<32 - 1})
		assert.Equal(t, EdgeKey(1<<64-1), en)
		assert.Equal(t, [2]int{1<<32 - 1, 1<<32 - 1}, en.GetVertices(false))

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 0}) })
	}
	{ // Directed edges keep their orientation and share a key per vertex pair
		e1 := NewEdgeInt([2]int{4, 0})
		e2 := NewEdgeInt([2]int{0, 4})
		assert.Equal(t, [2]int{4, 0}, e1.GetVertices())
		assert.Equal(t, [2]int{0, 4}, e2.GetVertices())
		assert.Equal(t, e1.GetKey(), e2.GetKey())
		assert.Equal(t, NewEdgeKey([2]int{0, 4}), e1.GetKey())
		assert.NotEqual(t, e1, e2)
	}
	{ // Boundary tags parse to a base flag plus an optional connection label
		tokens := []string{"WALL", "Periodic-1", "Periodic-2", "Wall-22", "Wall-top", "Neuman-10"}
		flags := []BCFLAG{BC_Wall, BC_Periodic, BC_Periodic, BC_Wall, BC_Wall, BC_Neuman}
		labels := []string{"", "1", "2", "22", "top", "10"}
		for i, token := range tokens {
			bt := NewBCTAG(token)
			assert.Equal(t, flags[i], bt.GetFLAG())
			assert.Equal(t, labels[i], bt.GetLabel())
		}
		assert.Equal(t, "BC_Wall", BC_Wall.String())
		assert.Equal(t, "BC_Periodic", BC_Periodic.String())
		assert.Panics(t, func() { NewBCTAG("nosuchcondition") })
		assert.Panics(t, func() { NewBCTAG("") })
	}
	{ // Edges accumulate under their tag, periodic pairs arrive in two calls
		bm := make(BCMAP)
		bm.AddEdges(NewBCTAG("wall"), []EdgeInt{
			NewEdgeInt([2]int{0, 1}),
			NewEdgeInt([2]int{1, 2}),
		})
		bm.AddEdges(NewBCTAG("Wall"), []EdgeInt{
			NewEdgeInt([2]int{2, 3}),
		})
		bm.AddEdges(NewBCTAG("periodic-1"), []EdgeInt{
			NewEdgeInt([2]int{3, 0}),
		})
		assert.Equal(t, 2, len(bm))
		assert.Equal(t, 3, len(bm[BCTAG("wall")]))
		assert.Equal(t, 1, len(bm[BCTAG("periodic-1")]))
		assert.Equal(t, [2]int{2, 3}, bm[BCTAG("wall")][2].GetVertices())
		assert.Equal(t, BC_Periodic, BCTAG("periodic-1").GetFLAG())
	}
}
