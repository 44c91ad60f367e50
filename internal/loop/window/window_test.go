package window

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sfx "github.com/tomz197/meteors/internal/audio"
	"github.com/tomz197/meteors/internal/loop/world"
	"github.com/tomz197/meteors/internal/object"
)

func TestColorKey(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 11))
	src.Set(10, 10, color.Black)
	src.Set(11, 10, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	out := colorKey(src, color.Black)

	require.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds(), "rebased to the origin")
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A)
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, out.NRGBAAt(1, 0))
}

func TestLoadAssetsBulletSprite(t *testing.T) {
	dir := t.TempDir()
	sprite := image.NewRGBA(image.Rect(0, 0, 6, 12))
	f, err := os.Create(filepath.Join(dir, bulletFile))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, sprite))
	require.NoError(t, f.Close())

	a, errs := LoadAssets(dir)
	assert.Len(t, errs, 4, "only the other sprites are missing")
	assert.Equal(t, image.Rect(0, 0, 6, 12), a.Bullet.Bounds())
}

func TestLoadAssetsFallbacks(t *testing.T) {
	a, errs := LoadAssets(t.TempDir())

	assert.Len(t, errs, 5)
	require.NotNil(t, a.Bullet)
	assert.Equal(t, image.Rect(0, 0, object.BulletWidth, object.BulletHeight), a.Bullet.Bounds())
	assert.NotNil(t, a.Background)
	assert.NotNil(t, a.Ship)
	assert.NotNil(t, a.Meteor)
	assert.NotNil(t, a.Explosion)
}

func TestInputFromKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []ebiten.Key
		left  bool
		right bool
		space bool
	}{
		{"arrows", []ebiten.Key{ebiten.KeyArrowLeft}, true, false, false},
		{"wasd", []ebiten.Key{ebiten.KeyD}, false, true, false},
		{"fire", []ebiten.Key{ebiten.KeySpace, ebiten.KeyA}, true, false, true},
		{"nothing", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pressed := func(k ebiten.Key) bool {
				for _, want := range tt.keys {
					if k == want {
						return true
					}
				}
				return false
			}

			in := inputFromKeys(pressed)
			assert.Equal(t, tt.left, in.Left)
			assert.Equal(t, tt.right, in.Right)
			assert.Equal(t, tt.space, in.Space)
		})
	}
}

func TestPCMIsStereo16Bit(t *testing.T) {
	data := pcm(sfx.CreateHitSound(sampleRate))

	frames := beep.SampleRate(sampleRate).N(sfx.HitDuration)
	assert.Len(t, data, frames*4)
}

type countingSound struct{ shots, explosions, hits int }

func (c *countingSound) PlayShot()      { c.shots++ }
func (c *countingSound) PlayExplosion() { c.explosions++ }
func (c *countingSound) PlayHit()       { c.hits++ }

func TestEventCues(t *testing.T) {
	sound := &countingSound{}
	g := &Game{sound: sound}

	g.cue(world.EventShot)
	g.cue(world.EventMeteorDestroyed)
	g.cue(world.EventPlayerHit)
	g.cue(world.EventGameOver)

	assert.Equal(t, 1, sound.shots)
	assert.Equal(t, 2, sound.explosions)
	assert.Equal(t, 1, sound.hits)

	assert.NotPanics(t, func() { (&Game{}).cue(world.EventShot) })
}
