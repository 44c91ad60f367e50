package object

import (
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/physics"
)

// Bullet dimensions and speed.
const (
	BulletWidth  = 5
	BulletHeight = 10
	BulletSpeed  = 10.0 // Pixels per frame, upward
)

// Bullet is a single-use projectile fired by the player.
type Bullet struct {
	Rect      physics.Rect
	VY        float64
	destroyed bool
}

// NewBullet creates a bullet whose bottom-center sits at (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{
		Rect: physics.Rect{
			X: x - BulletWidth/2.0,
			Y: y - BulletHeight,
			W: BulletWidth,
			H: BulletHeight,
		},
		VY: -BulletSpeed,
	}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// Bounds returns the bullet's rectangle.
func (b *Bullet) Bounds() physics.Rect {
	return b.Rect
}

// Update moves the bullet up and removes it once it has left the top.
func (b *Bullet) Update(_ UpdateContext) (bool, error) {
	if b.destroyed {
		return true, nil
	}
	b.Rect = b.Rect.Translate(0, b.VY)
	return b.Rect.Bottom() < 0, nil
}

// Draw renders the bullet as a solid bar.
func (b *Bullet) Draw(ctx DrawContext) error {
	ctx.Canvas.SetColor(draw.ColorBullet)
	ctx.Canvas.FillRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
	return nil
}
