package object

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/physics"
)

// MeteorSize is a meteor's unrotated sprite width (and height) in pixels.
type MeteorSize int

const (
	MeteorSmall  MeteorSize = 25
	MeteorMedium MeteorSize = 30
	MeteorLarge  MeteorSize = 35
)

// MeteorSizes lists the size variants a new meteor is drawn from.
var MeteorSizes = []MeteorSize{MeteorMedium, MeteorSmall, MeteorLarge}

// Spawn ranges, all half-open [lo, hi).
const (
	meteorSpawnMinY      = -150
	meteorSpawnMaxY      = -100
	meteorMinVX          = -3
	meteorMaxVX          = 3
	meteorMinVY          = 2
	meteorMaxVY          = 8
	meteorRespawnMaxVY   = 5
	meteorMinRotation    = 3
	meteorMaxRotation    = 8
	meteorOffscreenSlack = 20
)

// RotationInterval is the minimum time between two rotation steps.
const RotationInterval = 25 * time.Millisecond

// Meteor is a falling, spinning rock. It never leaves the world: once it
// falls off screen it is repositioned above the top edge.
type Meteor struct {
	Rect          physics.Rect // Current (rotated) bounding box
	VX, VY        float64      // Pixels per frame
	Size          MeteorSize
	Angle         float64 // Degrees in [0, 360)
	RotationSpeed float64 // Degrees per rotation step
	Radius        float64 // Collision radius, from the unrotated width
	Vertices      []float64

	lastRotation time.Duration
	destroyed    bool
}

// NewMeteor creates a meteor of a random size somewhere above the screen.
func NewMeteor(r *rand.Rand, screen Screen, now time.Duration) *Meteor {
	size := MeteorSizes[r.IntN(len(MeteorSizes))]
	w := float64(size)

	// Irregular outline: 9 vertices between 75% and 100% of the half-width.
	vertices := make([]float64, 9)
	for i := range vertices {
		vertices[i] = w / 2 * (0.75 + r.Float64()*0.25)
	}

	m := &Meteor{
		Rect:          physics.Rect{W: w, H: w},
		Size:          size,
		Radius:        math.Floor(w * 0.85 / 2),
		Vertices:      vertices,
		lastRotation:  now,
		VY:            float64(randRange(r, meteorMinVY, meteorMaxVY)),
		VX:            float64(randRange(r, meteorMinVX, meteorMaxVX)),
		RotationSpeed: float64(randRange(r, meteorMinRotation, meteorMaxRotation)),
	}
	m.place(r, screen)
	return m
}

// place puts the meteor at a random x and a y above the top edge.
func (m *Meteor) place(r *rand.Rand, screen Screen) {
	m.Rect.X = float64(randRange(r, 0, int(screen.Width-m.Rect.W)))
	m.Rect.Y = float64(randRange(r, meteorSpawnMinY, meteorSpawnMaxY))
}

// Respawn repositions the meteor above the screen with fresh velocity and
// spin. Its size and current angle are kept.
func (m *Meteor) Respawn(r *rand.Rand, screen Screen) {
	m.place(r, screen)
	m.VY = float64(randRange(r, meteorMinVY, meteorRespawnMaxVY))
	m.VX = float64(randRange(r, meteorMinVX, meteorMaxVX))
	m.RotationSpeed = float64(randRange(r, meteorMinRotation, meteorMaxRotation))
}

// Offscreen reports whether the meteor has left the playfield.
func (m *Meteor) Offscreen(screen Screen) bool {
	return m.Rect.Top() > screen.Height ||
		m.Rect.Left() > screen.Width+meteorOffscreenSlack ||
		m.Rect.Right() < -meteorOffscreenSlack
}

// Center returns the meteor's center point.
func (m *Meteor) Center() (float64, float64) {
	return m.Rect.Center()
}

// Bounds returns the current rotated bounding box.
func (m *Meteor) Bounds() physics.Rect {
	return m.Rect
}

// MarkDestroyed marks the meteor for removal.
func (m *Meteor) MarkDestroyed() {
	m.destroyed = true
}

// IsDestroyed returns true if the meteor is marked for destruction.
func (m *Meteor) IsDestroyed() bool {
	return m.destroyed
}

// Update moves and rotates the meteor, respawning it once off screen.
func (m *Meteor) Update(ctx UpdateContext) (bool, error) {
	if m.destroyed {
		return true, nil
	}

	m.Rect = m.Rect.Translate(m.VX, m.VY)
	m.rotate(ctx.Now)

	if m.Offscreen(ctx.Screen) {
		m.Respawn(ctx.Rand, ctx.Screen)
	}
	return false, nil
}

// rotate advances the angle one step when RotationInterval has passed.
// The bounding box grows or shrinks around the same center.
func (m *Meteor) rotate(now time.Duration) {
	if now-m.lastRotation <= RotationInterval {
		return
	}
	m.lastRotation = now
	m.Angle = math.Mod(m.Angle+m.RotationSpeed, 360)

	w := float64(m.Size)
	m.Rect = m.Rect.Resize(physics.RotatedSize(w, w, m.Angle))
}

// Draw renders the meteor as a filled irregular polygon.
func (m *Meteor) Draw(ctx DrawContext) error {
	cx, cy := m.Center()
	rad := m.Angle * math.Pi / 180
	n := len(m.Vertices)

	points := ctx.Canvas.BorrowPoints(n)
	for i, dist := range m.Vertices {
		a := rad + float64(i)*2*math.Pi/float64(n)
		points[i] = draw.Point{X: cx + math.Cos(a)*dist, Y: cy + math.Sin(a)*dist}
	}

	ctx.Canvas.SetColor(draw.ColorMeteor)
	ctx.Canvas.DrawPolygon(points, true)
	return nil
}
