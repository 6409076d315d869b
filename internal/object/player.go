package object

import (
	"math/rand"

	"github.com/tomz197/gemrush/internal/physics"
)

// PlayerRadius is the pickup radius of the player in logical units.
const PlayerRadius = 1.0

// Player is the sprite the user steers around the arena.
type Player struct {
	X, Y  float64 // Centre position
	Speed float64 // Logical units per second

	facing rune // Last movement direction, for the sprite
	moving bool
}

// NewPlayer creates a player at the given position.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Speed:  24.0,
		facing: '@',
	}
}

// Update moves the player from held direction keys, clamped to the arena.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	var dx, dy float64
	if ctx.Input.Left {
		dx--
	}
	if ctx.Input.Right {
		dx++
	}
	if ctx.Input.Up {
		dy--
	}
	if ctx.Input.Down {
		dy++
	}
	dx, dy = physics.Normalize(dx, dy)
	p.moving = dx != 0 || dy != 0

	p.X += dx * p.Speed * dt
	p.Y += dy * p.Speed * dt
	p.X, p.Y = ctx.Arena.Clamp(p.X, p.Y, PlayerRadius)

	if p.moving {
		p.facing = facingGlyph(dx, dy)
		// Roughly twelve trail particles per second while moving
		if rand.Float64() < 12*dt {
			SpawnTrail(p.X, p.Y, ctx.Spawner)
		}
	}
	return false, nil
}

func facingGlyph(dx, dy float64) rune {
	switch {
	case dx < 0 && dy == 0:
		return '◀'
	case dx > 0 && dy == 0:
		return '▶'
	case dy < 0:
		return '▲'
	case dy > 0:
		return '▼'
	default:
		return '@'
	}
}

// Draw renders the player sprite.
func (p *Player) Draw(ctx DrawContext) error {
	col, row := ctx.Arena.Cell(p.X, p.Y)
	ctx.Writer.WriteAt(col, row, ctx.Styles.Player.Render(string(p.facing)))
	return nil
}

// GetPosition returns the player's centre.
func (p *Player) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// Touches reports whether the player overlaps a gem.
func (p *Player) Touches(g *Gem) bool {
	return physics.CirclesOverlap(p.X, p.Y, PlayerRadius, g.X, g.Y, GemRadius)
}

// MoveTo places the player, e.g. back at the arena centre between levels.
func (p *Player) MoveTo(x, y float64) {
	p.X, p.Y = x, y
	p.facing = '@'
	p.moving = false
}
