package object

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Now     time.Duration // Game clock, monotonic since the world was created
	Delta   time.Duration // Time since the previous frame
	Input   Input
	Screen  Screen
	Spawner Spawner
	Rand    *rand.Rand
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	Now    time.Duration
}

// Screen is the playfield size in logical pixels.
type Screen struct {
	Width  float64
	Height float64
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// Collider is implemented by objects that take part in collision checks.
type Collider interface {
	Bounds() physics.Rect
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// randRange returns a uniform integer in [lo, hi), like a half-open dice roll.
func randRange(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo)
}
