package object

import (
	"fmt"
	"math"
	"math/rand"
)

// GemKind identifies a gem's type, which sets its score value and time bonus.
type GemKind int

const (
	Diamond GemKind = iota
	Ruby
	Emerald
	Sapphire
	Topaz
	gemKindCount
)

// GemKinds lists every kind, most valuable first.
var GemKinds = []GemKind{Diamond, Ruby, Emerald, Sapphire, Topaz}

type gemTrait struct {
	name   string
	value  int
	bonus  float64 // Seconds added to the countdown on pickup
	color  string
	frames [2]rune
}

var gemTraits = [gemKindCount]gemTrait{
	Diamond:  {"diamond", 10, 5, "#C8FFFF", [2]rune{'◆', '◇'}},
	Ruby:     {"ruby", 8, 4, "#FF3232", [2]rune{'♦', '◊'}},
	Emerald:  {"emerald", 6, 3, "#32FF50", [2]rune{'■', '□'}},
	Sapphire: {"sapphire", 5, 2, "#3264FF", [2]rune{'●', '○'}},
	Topaz:    {"topaz", 4, 1, "#FFFF32", [2]rune{'★', '☆'}},
}

func (k GemKind) traits() gemTrait {
	if k < 0 || k >= gemKindCount {
		return gemTraits[Topaz]
	}
	return gemTraits[k]
}

func (k GemKind) String() string {
	if k < 0 || k >= gemKindCount {
		return fmt.Sprintf("GemKind(%d)", int(k))
	}
	return gemTraits[k].name
}

// Value is the score awarded for collecting the gem.
func (k GemKind) Value() int { return k.traits().value }

// TimeBonus is the number of seconds added to the countdown on pickup.
func (k GemKind) TimeBonus() float64 { return k.traits().bonus }

// Color is the gem's hex colour.
func (k GemKind) Color() string { return k.traits().color }

// Glyph is the gem's resting sprite.
func (k GemKind) Glyph() rune { return k.traits().frames[0] }

// RandomGemKind picks a kind uniformly.
func RandomGemKind(rng *rand.Rand) GemKind {
	return GemKinds[rng.Intn(len(GemKinds))]
}

// GemRadius is the pickup radius of a gem in logical units.
const GemRadius = 1.0

// Gem is a collectable placed in the arena.
type Gem struct {
	X, Y      float64
	Kind      GemKind
	Collected bool

	frameTime float64 // Seconds into the current animation frame
	frame     int
	bobPhase  float64
}

// gemFrameSeconds is how long each animation frame is shown.
const gemFrameSeconds = 0.4

// NewGem creates a gem of kind at (x, y).
func NewGem(kind GemKind, x, y float64) *Gem {
	return &Gem{X: x, Y: y, Kind: kind, bobPhase: rand.Float64() * 2 * math.Pi}
}

// Update advances the gem's animation and occasionally throws off a sparkle.
// Collected gems ask to be removed.
func (g *Gem) Update(ctx UpdateContext) (bool, error) {
	if g.Collected {
		return true, nil
	}
	dt := ctx.Delta.Seconds()

	g.frameTime += dt
	for g.frameTime >= gemFrameSeconds {
		g.frameTime -= gemFrameSeconds
		g.frame = (g.frame + 1) % 2
	}
	g.bobPhase = math.Mod(g.bobPhase+dt*4, 2*math.Pi)

	// About three sparkles per second per gem
	if rand.Float64() < 3*dt {
		SpawnSparkle(g.X, g.Y, g.Kind.Color(), ctx.Spawner)
	}
	return false, nil
}

// Draw renders the gem glyph for the current frame.
func (g *Gem) Draw(ctx DrawContext) error {
	if g.Collected {
		return nil
	}
	// Bob by half a row on the sub-row grid
	y := g.Y + math.Sin(g.bobPhase)*0.5
	col, row := ctx.Arena.Cell(g.X, y)
	glyph := string(g.Kind.traits().frames[g.frame])
	ctx.Writer.WriteAt(col, row, ctx.Styles.Gem(g.Kind).Render(glyph))
	return nil
}

// GetPosition returns the gem's centre.
func (g *Gem) GetPosition() (float64, float64) {
	return g.X, g.Y
}
