package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived sparkle shown where something was caught.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity in units per second
	Gravity     float64 // Downward acceleration
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Ink         draw.Ink
	Fade        bool // Whether to vanish before the end of its lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, ink draw.Ink) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Gravity = 0
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.92
	p.Ink = ink
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates particles in a circular burst around (x, y).
func SpawnBurst(rng *rand.Rand, x, y float64, count int, speed, lifetime float64, ink draw.Ink, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rng.Float64()*0.5)

		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, ink)
		spawner.Spawn(p)
	}
}

// SpawnCapture creates the effect for one captured object: golden sparkles
// for cookies, a shower of red shards for hazards, colored rings otherwise.
func SpawnCapture(rng *rand.Rand, obj engine.FallingObject, spawner Spawner) {
	switch obj.Kind {
	case engine.KindCollectible:
		SpawnBurst(rng, obj.X, obj.Y, 8, 25, 0.5, draw.InkSpark, spawner)
	case engine.KindHazard:
		if spawner == nil {
			return
		}
		for i := 0; i < 12; i++ {
			vx := (rng.Float64() - 0.5) * 50
			vy := -10 - rng.Float64()*25
			p := NewParticle(obj.X, obj.Y, vx, vy, 0.4+rng.Float64()*0.4, draw.InkHazard)
			p.Gravity = 120
			spawner.Spawn(p)
		}
	default:
		SpawnBurst(rng, obj.X, obj.Y, 14, 35, 0.6, InkFor(obj.Kind), spawner)
	}
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
	return false, nil
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.Fade && p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Canvas.SetInk(p.Ink)
	ctx.Canvas.SetFloat(p.X, p.Y)
	return nil
}
