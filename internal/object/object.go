// Package object defines the entities that live in the arena and the contexts
// they are updated and drawn with.
package object

import (
	"time"

	"github.com/tomz197/gemrush/internal/draw"
	"github.com/tomz197/gemrush/internal/input"
	"github.com/tomz197/gemrush/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   Input
	Arena   Arena
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
// The writer's origin is the arena's top-left interior cell.
type DrawContext struct {
	Writer *draw.ChunkWriter
	Styles *Styles
	Arena  Arena
}

// Arena is the playfield in logical units. One logical unit is one terminal
// column horizontally and half a terminal row vertically, which keeps
// distances round on screen.
type Arena struct {
	Width  float64
	Height float64
}

// Rows returns the arena height in terminal rows.
func (a Arena) Rows() int {
	return int(a.Height / 2)
}

// Cols returns the arena width in terminal columns.
func (a Arena) Cols() int {
	return int(a.Width)
}

// Clamp keeps a point of the given radius inside the arena.
func (a Arena) Clamp(x, y, radius float64) (float64, float64) {
	return physics.Clamp(x, radius, a.Width-radius), physics.Clamp(y, radius, a.Height-radius)
}

// Contains reports whether (x, y) lies inside the arena.
func (a Arena) Contains(x, y float64) bool {
	return x >= 0 && x < a.Width && y >= 0 && y < a.Height
}

// Cell converts a logical position to a 1-based terminal cell relative to the arena origin.
func (a Arena) Cell(x, y float64) (col, row int) {
	return int(x) + 1, int(y/2) + 1
}

// Object is a drawable and updatable arena entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw writes the object to ctx.Writer.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
