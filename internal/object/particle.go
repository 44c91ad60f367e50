package object

import (
	"math"
	"sync"

	"github.com/tomz197/meteors/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived speck of explosion debris.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity in pixels per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64
	Drag        float64 // Velocity kept per 60th of a second
}

// NewParticle takes a particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.95,
	}
	return p
}

// Release returns the particle to the pool.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnDebris bursts count particles outward from (x, y). Speed and
// lifetime are varied per particle.
func SpawnDebris(x, y float64, count int, speed, lifetime float64, ctx UpdateContext) {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return
	}
	for range count {
		angle := ctx.Rand.Float64() * 2 * math.Pi
		spd := speed * (0.5 + ctx.Rand.Float64())
		life := lifetime * (0.5 + ctx.Rand.Float64()*0.5)
		ctx.Spawner.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
}

// Update moves the particle and expires it.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	drag := math.Pow(p.Drag, dt*60)
	p.VX *= drag
	p.VY *= drag
	p.X += p.VX * dt
	p.Y += p.VY * dt

	return false, nil
}

// Draw plots the particle; it fades out in the last quarter of its life.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Canvas.SetColor(draw.ColorDebris)
	ctx.Canvas.SetFloat(p.X, p.Y)
	return nil
}
