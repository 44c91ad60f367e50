package physics

import "math"

// Rect is an axis-aligned rectangle in screen space (Y grows downward).
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// RectFromCenter builds a w x h rectangle centered on (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.CenterX(), r.CenterY()
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Resize returns a w x h rectangle sharing r's center.
func (r Rect) Resize(w, h float64) Rect {
	return RectFromCenter(r.CenterX(), r.CenterY(), w, h)
}

// Overlaps reports whether the two rectangles share any interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// RotatedSize returns the dimensions of the axis-aligned box that bounds a
// w x h rectangle rotated by degrees, rounded up to whole pixels.
func RotatedSize(w, h, degrees float64) (float64, float64) {
	rad := degrees * math.Pi / 180
	c := math.Abs(math.Cos(rad))
	s := math.Abs(math.Sin(rad))
	// Trim float noise so 0/90/180 degrees keep the exact source size.
	const eps = 1e-9
	rw := math.Ceil(w*c + h*s - eps)
	rh := math.Ceil(w*s + h*c - eps)
	return rw, rh
}
