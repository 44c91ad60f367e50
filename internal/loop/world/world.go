// Package world runs the frame-stepped simulation shared by every frontend.
package world

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

// EventType identifies something that happened during a frame.
type EventType int

const (
	EventShot            EventType = iota // Player fired a bullet
	EventMeteorDestroyed                  // A bullet destroyed a meteor
	EventPlayerHit                        // A meteor struck the player
	EventGameOver                         // Health reached zero
)

// Event is emitted by Step for frontends to react to (sounds, logging).
type Event struct {
	Type EventType
	X, Y float64
}

// Options configures a new World. Zero values pick the game defaults.
type Options struct {
	Screen      object.Screen
	MeteorCount int
	Seed        uint64
	Rand        *rand.Rand    // Overrides Seed
	Now         time.Duration // Game clock at creation
}

// World owns every object of one game session.
type World struct {
	Objects []object.Object
	toSpawn []object.Object

	screen object.Screen
	player *object.Player
	rand   *rand.Rand

	space  *physics.Space[object.Object]
	bodies map[object.Object]*physics.Body[object.Object]

	meteors     int
	meteorCache []*object.Meteor
	score       int
	over        bool
	frames      int
	now         time.Duration
	delta       time.Duration
	events      []Event
}

// Collision tags.
var (
	tagBullet = physics.NewTag("bullet")
	tagMeteor = physics.NewTag("meteor")
)

// Broad-phase cell size; must cover the largest rotated meteor box.
const cellSize = 64

// Slack around the playfield so meteors above the top edge stay indexed.
const spaceMargin = 200

// New creates a world with the player and the initial meteors.
func New(opts Options) *World {
	screen := opts.Screen
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = object.Screen{Width: config.ScreenWidth, Height: config.ScreenHeight}
	}
	count := opts.MeteorCount
	if count <= 0 {
		count = config.MeteorCount
	}
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	}

	w := &World{
		screen: screen,
		rand:   r,
		now:    opts.Now,
		space:  physics.NewSpace[object.Object](screen.Width, screen.Height, cellSize, spaceMargin),
		bodies: make(map[object.Object]*physics.Body[object.Object]),
	}

	w.player = object.NewPlayer(screen, opts.Now)
	w.addObject(w.player)
	for range count {
		w.addObject(object.NewMeteor(r, screen, opts.Now))
	}
	return w
}

// Player returns the player's ship.
func (w *World) Player() *object.Player { return w.player }

// Score returns the points earned so far.
func (w *World) Score() int { return w.score }

// Over reports whether the game has ended.
func (w *World) Over() bool { return w.over }

// Frames returns the number of frames stepped.
func (w *World) Frames() int { return w.frames }

// Screen returns the playfield size.
func (w *World) Screen() object.Screen { return w.screen }

// Now returns the game clock of the last step.
func (w *World) Now() time.Duration { return w.now }

// MeteorCount returns the number of live meteors.
func (w *World) MeteorCount() int { return w.meteors }

// Meteors returns the live meteors in update order.
func (w *World) Meteors() []*object.Meteor {
	var out []*object.Meteor
	for _, obj := range w.Objects {
		if m, ok := obj.(*object.Meteor); ok && !m.IsDestroyed() {
			out = append(out, m)
		}
	}
	return out
}

// Events returns the events emitted since the previous call.
func (w *World) Events() []Event {
	ev := w.events
	w.events = nil
	return ev
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects and clears the queue.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		w.addObject(obj)
		if b, ok := obj.(*object.Bullet); ok {
			w.emit(EventShot, b.Rect.CenterX(), b.Rect.Bottom())
		}
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Step advances the game by one frame at game clock now: every object
// is updated (objects spawned meanwhile join afterwards), collisions are
// resolved and the game-over condition is checked. Stepping a finished
// game does nothing.
func (w *World) Step(now time.Duration, in object.Input) error {
	if w.over {
		return nil
	}
	w.delta = now - w.now
	w.now = now

	ctx := object.UpdateContext{
		Now:     now,
		Delta:   w.delta,
		Screen:  w.screen,
		Spawner: w,
		Rand:    w.rand,
	}

	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		objCtx := ctx
		if obj == object.Object(w.player) {
			objCtx.Input = in
		}
		remove, err := obj.Update(objCtx)
		if err != nil {
			return fmt.Errorf("update %T: %w", obj, err)
		}
		if remove {
			w.removeObject(obj)
			object.ReleaseObject(obj)
			continue
		}
		if body, ok := w.bodies[obj]; ok {
			w.space.Move(body, obj.(object.Collider).Bounds())
		}
		kept = append(kept, obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
	w.FlushSpawned()

	w.checkCollisions()
	w.FlushSpawned()

	if w.player.Dead() {
		w.over = true
		w.emit(EventGameOver, w.player.Rect.CenterX(), w.player.Rect.CenterY())
	}
	w.frames++
	return nil
}

// Draw draws every object in update order.
func (w *World) Draw(ctx object.DrawContext) error {
	for _, obj := range w.Objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// addObject appends obj and indexes it for collisions.
func (w *World) addObject(obj object.Object) {
	w.Objects = append(w.Objects, obj)
	switch o := obj.(type) {
	case *object.Meteor:
		w.meteors++
		w.bodies[obj] = w.space.Add(obj, o.Bounds(), tagMeteor)
	case *object.Bullet:
		w.bodies[obj] = w.space.Add(obj, o.Bounds(), tagBullet)
	}
}

// removeObject drops obj from the collision index and the meteor count.
// The caller removes it from Objects.
func (w *World) removeObject(obj object.Object) {
	body, ok := w.bodies[obj]
	if !ok {
		return
	}
	w.space.Remove(body)
	delete(w.bodies, obj)
	if _, isMeteor := obj.(*object.Meteor); isMeteor {
		w.meteors--
	}
}

func (w *World) emit(t EventType, x, y float64) {
	w.events = append(w.events, Event{Type: t, X: x, Y: y})
}
