// Package window runs the game in a desktop window with ebiten.
package window

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/loop/world"
	"github.com/tomz197/meteors/internal/object"
)

// SoundPlayer receives gameplay sound cues.
type SoundPlayer interface {
	PlayShot()
	PlayExplosion()
	PlayHit()
}

// HUD layout, in screen pixels.
const (
	healthBarX      = 10
	healthBarY      = 10
	healthBarHeight = 20
	healthBarBorder = 2
	scoreOffsetX    = 150
	scoreY          = 10
)

var (
	colorHealth = color.RGBA{G: 255, A: 255}
	colorBullet = color.RGBA{R: 255, G: 255, A: 255}
)

// Game implements ebiten.Game around a single World.
type Game struct {
	world  *world.World
	assets *Assets
	sound  SoundPlayer
	ticks  int
	quit   bool
}

// NewGame creates a game seeded with seed. sound may be nil.
func NewGame(seed uint64, assets *Assets, sound SoundPlayer) *Game {
	return &Game{
		world:  world.New(world.Options{Seed: seed}),
		assets: assets,
		sound:  sound,
	}
}

// Score returns the current score.
func (g *Game) Score() int { return g.world.Score() }

// Over reports whether the player ran out of health.
func (g *Game) Over() bool { return g.world.Over() }

// Quit reports whether the player closed the game early.
func (g *Game) Quit() bool { return g.quit }

// Update advances the world one tick. The game clock counts ticks so
// the simulation runs at config.TargetFPS regardless of wall time.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.quit = true
		return ebiten.Termination
	}

	g.ticks++
	now := time.Duration(g.ticks) * config.TargetFrameTime
	if err := g.world.Step(now, inputFromKeys(ebiten.IsKeyPressed)); err != nil {
		return fmt.Errorf("step world: %w", err)
	}

	for _, ev := range g.world.Events() {
		g.cue(ev.Type)
	}
	if g.world.Over() {
		return ebiten.Termination
	}
	return nil
}

// inputFromKeys samples the keyboard through pressed.
func inputFromKeys(pressed func(ebiten.Key) bool) object.Input {
	return object.Input{
		Left:   pressed(ebiten.KeyArrowLeft) || pressed(ebiten.KeyA),
		Right:  pressed(ebiten.KeyArrowRight) || pressed(ebiten.KeyD),
		Space:  pressed(ebiten.KeySpace),
		Escape: pressed(ebiten.KeyEscape),
	}
}

func (g *Game) cue(t world.EventType) {
	if g.sound == nil {
		return
	}
	switch t {
	case world.EventShot:
		g.sound.PlayShot()
	case world.EventMeteorDestroyed, world.EventGameOver:
		g.sound.PlayExplosion()
	case world.EventPlayerHit:
		g.sound.PlayHit()
	}
}

// Draw renders the background, every object and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.assets.Background, fitTo(g.assets.Background, config.ScreenWidth, config.ScreenHeight))

	for _, obj := range g.world.Objects {
		switch o := obj.(type) {
		case *object.Player:
			g.drawSprite(screen, g.assets.Ship, o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H, 0)
		case *object.Meteor:
			size := float64(o.Size)
			cx, cy := o.Center()
			g.drawSprite(screen, g.assets.Meteor, cx-size/2, cy-size/2, size, size, o.Angle)
		case *object.Bullet:
			g.drawSprite(screen, g.assets.Bullet, o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H, 0)
		case *object.Explosion:
			d := o.Radius() * 2
			g.drawSprite(screen, g.assets.Explosion, o.X-d/2, o.Y-d/2, d, d, 0)
		case *object.Particle:
			vector.DrawFilledRect(screen, float32(o.X), float32(o.Y), 2, 2, color.RGBA{R: 255, G: 80, A: 255}, false)
		}
	}

	g.drawHUD(screen)
}

// drawSprite draws img stretched to w x h at (x, y), rotated
// counter-clockwise by angle degrees around its center.
func (g *Game) drawSprite(screen, img *ebiten.Image, x, y, w, h, angle float64) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Rotate(-angle * math.Pi / 180)
	op.GeoM.Translate(x+w/2, y+h/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func fitTo(img *ebiten.Image, w, h int) *ebiten.DrawImageOptions {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	return op
}

// drawHUD draws a health bar as wide as the health value inside a
// fixed outline, and the score in the top right.
func (g *Game) drawHUD(screen *ebiten.Image) {
	health := g.world.Player().Health()
	if health > 0 {
		vector.DrawFilledRect(screen, healthBarX, healthBarY, float32(health), healthBarHeight, colorHealth, false)
	}
	vector.StrokeRect(screen, healthBarX, healthBarY, object.MaxHealth, healthBarHeight, healthBarBorder, color.White, false)

	face := basicfont.Face7x13
	score := fmt.Sprintf("Score: %d", g.world.Score())
	text.Draw(screen, score, face, config.ScreenWidth-scoreOffsetX, scoreY+face.Ascent, color.White)
}

// Layout fixes the logical screen to the playfield size.
func (g *Game) Layout(_, _ int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

var _ ebiten.Game = (*Game)(nil)
