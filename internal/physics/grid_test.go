package physics

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(g *Grid, x, y float64) []int {
	var found []int
	g.QueryAround(x, y, func(i int) bool {
		found = append(found, i)
		return false
	})
	slices.Sort(found)
	return found
}

func TestGrid_QueryAround(t *testing.T) {
	g := NewGrid(60, 40, 3)
	g.Insert(1, 1, 0)
	g.Insert(4, 1, 1)
	g.Insert(30, 20, 2)
	g.Insert(59.9, 39.9, 3)

	assert.Equal(t, []int{0, 1}, collect(g, 0, 0))
	assert.Equal(t, []int{2}, collect(g, 31, 21))
	assert.Equal(t, []int{3}, collect(g, 100, 100), "positions outside the arena clamp to the edge")
	assert.Empty(t, collect(g, 15, 30))
}

func TestGrid_StopsEarlyAndClears(t *testing.T) {
	g := NewGrid(10, 10, 5)
	for i := 0; i < 4; i++ {
		g.Insert(1, 1, i)
	}

	calls := 0
	g.QueryAround(1, 1, func(int) bool {
		calls++
		return true
	})
	assert.Equal(t, 1, calls)

	g.Clear()
	assert.Empty(t, collect(g, 1, 1))
}
