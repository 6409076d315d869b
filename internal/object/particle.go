package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/gemrush/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// trailColor is the tint of the particles the player leaves behind.
const trailColor = "#3264FF"

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Gravity     float64 // Downward acceleration, logical units per second²
	Color       string  // Hex tint
	Symbol      rune    // Glyph while bright; fades through the shade ramp
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, color string, symbol rune) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Gravity = 0
	p.Color = color
	p.Symbol = symbol
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates the circular burst shown when a gem is collected.
func SpawnBurst(x, y float64, count int, color string, spawner Spawner) {
	if spawner == nil {
		return
	}

	symbols := []rune{'*', '+', '·', '✦', '•'}

	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := 12.0 * (0.5 + rand.Float64())
		// Random lifetime variation (50% to 100%)
		life := 0.8 * (0.5 + rand.Float64()*0.5)

		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, color, symbols[rand.Intn(len(symbols))])
		p.Gravity = 6
		spawner.Spawn(p)
	}
}

// SpawnTrail drops a faint particle behind a moving player.
func SpawnTrail(x, y float64, spawner Spawner) {
	if spawner == nil {
		return
	}
	x += (rand.Float64() - 0.5) * 2
	y += (rand.Float64() - 0.5) * 2
	p := NewParticle(x, y, 0, 0, 0.3+rand.Float64()*0.2, trailColor, '·')
	spawner.Spawn(p)
}

// SpawnSparkle creates a single rising glint above a gem.
func SpawnSparkle(x, y float64, color string, spawner Spawner) {
	if spawner == nil {
		return
	}
	vx := (rand.Float64() - 0.5) * 2
	vy := -2 - rand.Float64()*2
	p := NewParticle(x+(rand.Float64()-0.5)*2, y, vx, vy, 0.4+rand.Float64()*0.3, color, '✧')
	p.Drag = 0.9
	spawner.Spawn(p)
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.VY += p.Gravity * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt

	// Particles leaving the arena are dropped
	return !ctx.Arena.Contains(p.X, p.Y), nil
}

// Glyph returns the symbol for the particle's remaining life: the full symbol
// while fresh, then progressively lighter shades.
func (p *Particle) Glyph() rune {
	if p.MaxLifetime <= 0 {
		return p.Symbol
	}
	life := p.Lifetime / p.MaxLifetime
	if life > 0.6 {
		return p.Symbol
	}
	// Map the remaining 60% onto the non-blank shades.
	return draw.ShadeLevel(math.Max(life/0.6, 0.01))
}

// Draw renders the particle at its cell.
func (p *Particle) Draw(ctx DrawContext) error {
	glyph := p.Glyph()
	if glyph == ' ' {
		return nil
	}
	col, row := ctx.Arena.Cell(p.X, p.Y)
	ctx.Writer.WriteAt(col, row, ctx.Styles.Tint(p.Color).Render(string(glyph)))
	return nil
}
