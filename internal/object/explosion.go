package object

import (
	"math"
	"time"

	"github.com/tomz197/meteors/internal/draw"
)

// ExplosionSize selects the blast for a destroyed meteor or a hit ship.
type ExplosionSize int

const (
	ExplosionSmall ExplosionSize = iota // Meteor hitting the player
	ExplosionLarge                      // Meteor shot down
)

// Explosion animation timing.
const (
	ExplosionFrameInterval = 50 * time.Millisecond
	ExplosionFrames        = 9
)

// Diameter returns the final blast diameter in pixels.
func (s ExplosionSize) Diameter() float64 {
	if s == ExplosionLarge {
		return 60
	}
	return 30
}

// Explosion is a short frame-counted blast animation. It has no effect
// on gameplay.
type Explosion struct {
	X, Y      float64
	Size      ExplosionSize
	Frame     int
	lastFrame time.Duration
	debris    bool
}

// NewExplosion creates an explosion centered on (x, y).
func NewExplosion(x, y float64, size ExplosionSize, now time.Duration) *Explosion {
	return &Explosion{X: x, Y: y, Size: size, lastFrame: now}
}

// Radius returns the blast radius for the current frame.
func (e *Explosion) Radius() float64 {
	return e.Size.Diameter() / 2 * float64(e.Frame+1) / ExplosionFrames
}

// Update advances the animation one frame every ExplosionFrameInterval
// and removes the explosion after its last frame.
func (e *Explosion) Update(ctx UpdateContext) (bool, error) {
	if !e.debris {
		e.debris = true
		count := 6
		if e.Size == ExplosionLarge {
			count = 12
		}
		SpawnDebris(e.X, e.Y, count, e.Size.Diameter()*2, 0.5, ctx)
	}

	if ctx.Now-e.lastFrame > ExplosionFrameInterval {
		e.lastFrame = ctx.Now
		e.Frame++
	}
	return e.Frame >= ExplosionFrames, nil
}

// Draw renders the blast as an expanding ring.
func (e *Explosion) Draw(ctx DrawContext) error {
	const segments = 10
	r := e.Radius()

	points := ctx.Canvas.BorrowPoints(segments)
	for i := range points {
		a := float64(i) * 2 * math.Pi / segments
		points[i] = draw.Point{X: e.X + math.Cos(a)*r, Y: e.Y + math.Sin(a)*r}
	}

	ctx.Canvas.SetColor(draw.ColorExplosion)
	ctx.Canvas.DrawPolygon(points, e.Frame < ExplosionFrames/3)
	return nil
}
