package physics

import "math"

// Grid is a uniform grid over a bounded arena for proximity lookups.
// Items are inserted by position and index; nearby items are found via a 3x3
// cell neighbourhood, so the cell size must be at least the largest distance
// a query cares about.
type Grid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       [][]int // Item indices per cell, reused between layouts
}

// NewGrid creates a grid covering a width × height arena.
func NewGrid(width, height, cellSize float64) *Grid {
	cols := max(int(math.Ceil(width/cellSize)), 1)
	rows := max(int(math.Ceil(height/cellSize)), 1)
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items without releasing cell memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *Grid) Insert(x, y float64, index int) {
	col, row := g.cell(x, y)
	i := row*g.cols + col
	g.cells[i] = append(g.cells[i], index)
}

// QueryAround calls fn for each item in the 3x3 cell neighbourhood of (x, y).
// Iteration stops early when fn returns true.
func (g *Grid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.cell(x, y)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, idx := range g.cells[r*g.cols+c] {
				if fn(idx) {
					return
				}
			}
		}
	}
}

// cell converts a position to grid coordinates, clamped to the grid.
func (g *Grid) cell(x, y float64) (col, row int) {
	col = min(max(int(x*g.invCellSize), 0), g.cols-1)
	row = min(max(int(y*g.invCellSize), 0), g.rows-1)
	return col, row
}
