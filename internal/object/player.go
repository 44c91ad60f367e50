package object

import (
	"time"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/physics"
)

// Player ship dimensions and handling.
const (
	PlayerWidth        = 50
	PlayerHeight       = 40
	PlayerSpeed        = 8.0 // Pixels per frame
	PlayerBottomMargin = 10
	MaxHealth          = 100
	ShootCooldown      = 200 * time.Millisecond
)

// Player is the ship at the bottom of the screen.
type Player struct {
	Rect  physics.Rect
	Speed float64

	health   int
	lastShot time.Duration // Game clock of the previous shot (or creation)
}

// NewPlayer places a ship centered horizontally, just above the bottom
// edge, with full health. now starts the first shot cooldown.
func NewPlayer(screen Screen, now time.Duration) *Player {
	return &Player{
		Rect: physics.Rect{
			X: screen.Width/2 - PlayerWidth/2,
			Y: screen.Height - PlayerBottomMargin - PlayerHeight,
			W: PlayerWidth,
			H: PlayerHeight,
		},
		Speed:    PlayerSpeed,
		health:   MaxHealth,
		lastShot: now,
	}
}

// Health returns the current health in [0, MaxHealth].
func (p *Player) Health() int {
	return p.health
}

// SetHealth assigns health, clamped to [0, MaxHealth].
func (p *Player) SetHealth(h int) {
	p.health = max(0, min(MaxHealth, h))
}

// Damage subtracts n health through the clamping setter.
func (p *Player) Damage(n int) {
	p.SetHealth(p.health - n)
}

// Dead reports whether health is exhausted.
func (p *Player) Dead() bool {
	return p.health <= 0
}

// Bounds returns the ship's rectangle.
func (p *Player) Bounds() physics.Rect {
	return p.Rect
}

// Radius is the collision radius: the circle enclosing the rectangle.
func (p *Player) Radius() float64 {
	return physics.EnclosingRadius(p.Rect.W, p.Rect.H)
}

// Update moves the ship and fires when the cooldown has passed.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	switch {
	case ctx.Input.Left:
		p.Rect.X -= p.Speed
	case ctx.Input.Right:
		p.Rect.X += p.Speed
	}

	if p.Rect.Right() > ctx.Screen.Width {
		p.Rect.X = ctx.Screen.Width - p.Rect.W
	}
	if p.Rect.X < 0 {
		p.Rect.X = 0
	}

	if ctx.Input.Space {
		p.shoot(ctx)
	}

	return false, nil
}

// shoot spawns a bullet from the nose if strictly more than ShootCooldown
// has elapsed since the last shot.
func (p *Player) shoot(ctx UpdateContext) {
	if ctx.Spawner == nil || ctx.Now-p.lastShot <= ShootCooldown {
		return
	}
	p.lastShot = ctx.Now
	ctx.Spawner.Spawn(NewBullet(p.Rect.CenterX(), p.Rect.Top()))
}

// Draw renders the ship as a filled arrowhead with wings.
func (p *Player) Draw(ctx DrawContext) error {
	r := p.Rect
	cx := r.CenterX()

	ctx.Canvas.SetColor(draw.ColorShip)
	hull := ctx.Canvas.BorrowPoints(4)
	hull[0] = draw.Point{X: cx, Y: r.Top()}
	hull[1] = draw.Point{X: r.Right(), Y: r.Bottom()}
	hull[2] = draw.Point{X: cx, Y: r.Bottom() - r.H*0.25}
	hull[3] = draw.Point{X: r.Left(), Y: r.Bottom()}
	ctx.Canvas.DrawPolygon(hull, true)

	// Engine glow under the hull.
	ctx.Canvas.SetColor(draw.ColorExplosion)
	ctx.Canvas.FillRect(cx-4, r.Bottom()-r.H*0.25, 8, 4)

	return nil
}
