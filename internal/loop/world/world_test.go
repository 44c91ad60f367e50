package world

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

const frame = time.Second / 60

func newTestWorld(seed uint64) *World {
	return New(Options{Seed: seed})
}

// pin freezes m at the given center so the next Step leaves it in place.
func pin(m *object.Meteor, cx, cy float64) {
	m.VX, m.VY = 0, 0
	m.RotationSpeed = 0
	m.Angle = 0
	m.Rect = physics.RectFromCenter(cx, cy, float64(m.Size), float64(m.Size))
}

func bullets(w *World) []*object.Bullet {
	var out []*object.Bullet
	for _, obj := range w.Objects {
		if b, ok := obj.(*object.Bullet); ok {
			out = append(out, b)
		}
	}
	return out
}

func eventTypes(events []Event) []EventType {
	var out []EventType
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestNewWorld(t *testing.T) {
	w := newTestWorld(1)

	assert.Equal(t, config.MeteorCount, w.MeteorCount())
	assert.Len(t, w.Meteors(), config.MeteorCount)
	assert.Equal(t, object.MaxHealth, w.Player().Health())
	assert.Zero(t, w.Score())
	assert.False(t, w.Over())
	assert.Equal(t, object.Screen{Width: 800, Height: 800}, w.Screen())
}

func TestSameSeedSameGame(t *testing.T) {
	a, b := newTestWorld(42), newTestWorld(42)
	for i := 1; i <= 120; i++ {
		now := time.Duration(i) * frame
		require.NoError(t, a.Step(now, object.Input{}))
		require.NoError(t, b.Step(now, object.Input{}))
	}

	ma, mb := a.Meteors(), b.Meteors()
	require.Len(t, mb, len(ma))
	for i := range ma {
		assert.Equal(t, ma[i].Rect, mb[i].Rect)
	}
}

func TestBulletHitScoresAndReplacesMeteor(t *testing.T) {
	w := newTestWorld(3)
	target := w.Meteors()[0]
	pin(target, 400, 300)

	w.Spawn(object.NewBullet(400, 310))
	require.NoError(t, w.Step(frame, object.Input{}))

	assert.Equal(t, config.ScoreMeteorHit, w.Score())
	assert.Equal(t, config.MeteorCount, w.MeteorCount())
	assert.Len(t, w.Meteors(), config.MeteorCount)
	assert.NotContains(t, w.Meteors(), target)
	assert.Empty(t, bullets(w), "bullet consumed")
	assert.Equal(t, []EventType{EventShot, EventMeteorDestroyed}, eventTypes(w.Events()))
}

func TestBulletInsideMovingRotatedMeteor(t *testing.T) {
	tests := []struct {
		name string
		seed uint64
	}{
		{"seed 21", 21},
		{"seed 22", 22},
		{"seed 23", 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(tt.seed)
			m := w.Meteors()[0]
			pin(m, 400, 300)
			m.VX, m.VY = 2, 3
			m.Angle, m.RotationSpeed = 15, 30

			// The meteor moves to (402, 303) and turns to 45 degrees this
			// frame; the bullet sits on that center, well inside the box.
			w.Spawn(object.NewBullet(402, 308))
			require.NoError(t, w.Step(100*time.Millisecond, object.Input{}))

			assert.Equal(t, config.ScoreMeteorHit, w.Score())
			assert.Empty(t, bullets(w))
			assert.NotContains(t, w.Meteors(), m)
			assert.Equal(t, config.MeteorCount, w.MeteorCount())
		})
	}
}

func TestTwoBulletsOneMeteorScoresOnce(t *testing.T) {
	w := newTestWorld(4)
	pin(w.Meteors()[0], 400, 300)

	w.Spawn(object.NewBullet(396, 310))
	w.Spawn(object.NewBullet(404, 310))
	require.NoError(t, w.Step(frame, object.Input{}))

	assert.Equal(t, config.ScoreMeteorHit, w.Score())
	assert.Empty(t, bullets(w))
	assert.Equal(t, config.MeteorCount, w.MeteorCount())
}

func TestOneBulletOneMeteor(t *testing.T) {
	w := newTestWorld(5)
	ms := w.Meteors()
	// Two meteors stacked on the same spot; a single bullet hits only one.
	pin(ms[0], 400, 300)
	pin(ms[1], 400, 300)

	w.Spawn(object.NewBullet(400, 310))
	require.NoError(t, w.Step(frame, object.Input{}))

	assert.Equal(t, config.ScoreMeteorHit, w.Score())
	assert.Equal(t, config.MeteorCount, w.MeteorCount())
}

func TestMissingBulletKeepsFlying(t *testing.T) {
	w := newTestWorld(6)
	pin(w.Meteors()[0], 100, 300)

	w.Spawn(object.NewBullet(400, 310))
	require.NoError(t, w.Step(frame, object.Input{}))
	require.Len(t, bullets(w), 1)
	assert.Equal(t, 310.0, bullets(w)[0].Rect.Bottom(), "spawned bullets move from the next frame")

	require.NoError(t, w.Step(2*frame, object.Input{}))
	assert.Equal(t, 300.0, bullets(w)[0].Rect.Bottom())
	assert.Zero(t, w.Score())
}

func TestBulletRemovedAboveScreen(t *testing.T) {
	w := newTestWorld(7)
	w.Spawn(object.NewBullet(400, 15))
	require.NoError(t, w.Step(frame, object.Input{}))
	require.Len(t, bullets(w), 1)

	require.NoError(t, w.Step(2*frame, object.Input{}))
	require.Len(t, bullets(w), 1, "bottom at 5")

	require.NoError(t, w.Step(3*frame, object.Input{}))
	assert.Empty(t, bullets(w), "bottom at -5")
	assert.Len(t, w.bodies, config.MeteorCount, "bullet dropped from the collision index")
}

func TestShootingRateLimit(t *testing.T) {
	w := newTestWorld(8)
	fire := object.Input{Space: true}

	require.NoError(t, w.Step(time.Second, fire))
	require.Len(t, bullets(w), 1)

	require.NoError(t, w.Step(time.Second+100*time.Millisecond, fire))
	assert.Len(t, bullets(w), 1, "second shot inside the cooldown is dropped")

	require.NoError(t, w.Step(time.Second+250*time.Millisecond, fire))
	assert.Len(t, bullets(w), 2)

	var shots int
	for _, e := range w.Events() {
		if e.Type == EventShot {
			shots++
		}
	}
	assert.Equal(t, 2, shots)
}

func TestMeteorHitsPlayer(t *testing.T) {
	w := newTestWorld(9)
	p := w.Player()
	target := w.Meteors()[0]
	pin(target, p.Rect.CenterX(), p.Rect.CenterY())

	require.NoError(t, w.Step(frame, object.Input{}))

	assert.Equal(t, 80, p.Health())
	assert.Equal(t, config.MeteorCount, w.MeteorCount())
	assert.NotContains(t, w.Meteors(), target)
	assert.Equal(t, []EventType{EventPlayerHit}, eventTypes(w.Events()))
	assert.False(t, w.Over())
}

func TestCircleCollisionNearEdge(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		health int
	}{
		{"just inside", -0.5, 80},
		{"just outside", 1, 100},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(uint64(10 + i))
			p := w.Player()
			m := w.Meteors()[0]

			// Straight above the ship, at the sum of both radii plus offset.
			reach := p.Radius() + m.Radius + tt.offset
			pin(m, p.Rect.CenterX(), p.Rect.CenterY()-reach)
			require.NoError(t, w.Step(frame, object.Input{}))

			assert.Equal(t, tt.health, p.Health())
			assert.Equal(t, tt.health == 100, slices.Contains(w.Meteors(), m))
		})
	}
}

func TestFiveHitsEndTheGame(t *testing.T) {
	w := newTestWorld(12)
	p := w.Player()

	want := []int{80, 60, 40, 20, 0}
	for i, h := range want {
		pin(w.Meteors()[0], p.Rect.CenterX(), p.Rect.CenterY())
		require.NoError(t, w.Step(time.Duration(i+1)*frame, object.Input{}))

		assert.Equal(t, h, p.Health())
		assert.Equal(t, config.MeteorCount, w.MeteorCount())
		assert.Equal(t, h == 0, w.Over(), "after hit %d", i+1)
	}

	events := eventTypes(w.Events())
	assert.Equal(t, EventGameOver, events[len(events)-1])

	// A finished game no longer advances.
	frames := w.Frames()
	require.NoError(t, w.Step(time.Hour, object.Input{}))
	assert.Equal(t, frames, w.Frames())
}

func TestTwoMeteorsInOneFrame(t *testing.T) {
	w := newTestWorld(13)
	p := w.Player()
	w.Player().SetHealth(30)
	ms := w.Meteors()
	pin(ms[0], p.Rect.CenterX()-10, p.Rect.CenterY())
	pin(ms[1], p.Rect.CenterX()+10, p.Rect.CenterY())

	require.NoError(t, w.Step(frame, object.Input{}))

	assert.Equal(t, 0, p.Health(), "clamped, never negative")
	assert.True(t, w.Over())
	assert.Equal(t, config.MeteorCount, w.MeteorCount())
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	w := newTestWorld(99)
	r := rand.New(rand.NewPCG(5, 6))

	for i := 1; i <= 5000 && !w.Over(); i++ {
		in := object.Input{
			Left:  r.IntN(3) == 0,
			Right: r.IntN(3) == 0,
			Space: r.IntN(2) == 0,
		}
		require.NoError(t, w.Step(time.Duration(i)*frame, in))

		h := w.Player().Health()
		require.GreaterOrEqual(t, h, 0)
		require.LessOrEqual(t, h, object.MaxHealth)
		require.Equal(t, config.MeteorCount, w.MeteorCount())
		require.Len(t, w.Meteors(), config.MeteorCount)
		require.Zero(t, w.Score()%config.ScoreMeteorHit)

		for _, b := range bullets(w) {
			require.GreaterOrEqual(t, b.Rect.Bottom(), 0.0)
		}
		w.Events()
	}
}

func TestExplosionsComeAndGo(t *testing.T) {
	w := newTestWorld(14)
	pin(w.Meteors()[0], 400, 300)
	w.Spawn(object.NewBullet(400, 310))
	require.NoError(t, w.Step(frame, object.Input{}))

	countExplosions := func() int {
		n := 0
		for _, obj := range w.Objects {
			if _, ok := obj.(*object.Explosion); ok {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, countExplosions())

	// Nine frames at 50ms plus slack.
	for i := 2; i <= 40; i++ {
		require.NoError(t, w.Step(time.Duration(i)*frame, object.Input{}))
	}
	assert.Zero(t, countExplosions())
}
