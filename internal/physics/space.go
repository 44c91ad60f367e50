package physics

import (
	"sync"

	"github.com/solarlune/resolv"
)

// selectMu serializes cell selections across all spaces.
var selectMu sync.Mutex

// Space is a broad-phase collision space for axis-aligned boxes, backed by
// a resolv cell grid. Each box carries an Owner so hits map straight back to
// game objects.
//
// The grid is padded by margin on every side so boxes slightly off screen
// (meteors entering from above) still land in real cells.
type Space[T comparable] struct {
	space  *resolv.Space
	margin float64
	bodies map[resolv.IShape]*Body[T]
}

// Tags label bodies so queries can filter by kind.
type Tags = resolv.Tags

// NewTag returns a new tag with the given name.
func NewTag(name string) Tags {
	return resolv.NewTag(name)
}

// Body is a box registered in a Space.
type Body[T comparable] struct {
	Owner  T
	shape  *resolv.ConvexPolygon
	bounds Rect
	tags   Tags
}

// Bounds returns the last rectangle the body was placed at.
func (b *Body[T]) Bounds() Rect {
	return b.bounds
}

// NewSpace creates a space covering a width x height area plus margin on each side.
// cellSize should be at least as large as the biggest box inserted.
func NewSpace[T comparable](width, height, cellSize, margin float64) *Space[T] {
	return &Space[T]{
		space:  resolv.NewSpace(int(width+2*margin), int(height+2*margin), int(cellSize), int(cellSize)),
		margin: margin,
		bodies: make(map[resolv.IShape]*Body[T]),
	}
}

// Add registers a box for owner with the given tags.
func (s *Space[T]) Add(owner T, r Rect, tags Tags) *Body[T] {
	b := &Body[T]{Owner: owner, tags: tags}
	s.attach(b, r)
	return b
}

// Move updates a body's box. Size changes rebuild the underlying shape.
func (s *Space[T]) Move(b *Body[T], r Rect) {
	if b == nil || b.shape == nil {
		return
	}
	if r.W != b.bounds.W || r.H != b.bounds.H {
		s.detach(b)
		s.attach(b, r)
		return
	}
	b.shape.SetPosition(r.CenterX()+s.margin, r.CenterY()+s.margin)
	b.bounds = r
}

// Remove unregisters a body. Removing twice is a no-op.
func (s *Space[T]) Remove(b *Body[T]) {
	if b == nil || b.shape == nil {
		return
	}
	s.detach(b)
}

// Len returns the number of registered bodies.
func (s *Space[T]) Len() int {
	return len(s.bodies)
}

// Overlapping returns every other body carrying tags whose box intersects
// b, containment included. resolv narrows the candidates to the cells b
// touches; the boxes decide.
func (s *Space[T]) Overlapping(b *Body[T], tags Tags) []*Body[T] {
	if b == nil || b.shape == nil {
		return nil
	}

	// Cell selections dedupe through state shared by every resolv space.
	selectMu.Lock()
	defer selectMu.Unlock()

	var hits []*Body[T]
	b.shape.SelectTouchingCells(0).FilterShapes().ByTags(tags).ForEach(func(shape resolv.IShape) bool {
		other, ok := s.bodies[shape]
		if ok && other != b && other.bounds.Overlaps(b.bounds) {
			hits = append(hits, other)
		}
		return true
	})
	return hits
}

func (s *Space[T]) attach(b *Body[T], r Rect) {
	shape := resolv.NewRectangle(r.CenterX()+s.margin, r.CenterY()+s.margin, r.W, r.H)
	shape.Tags().Set(b.tags)
	s.space.Add(shape)
	s.bodies[shape] = b
	b.shape = shape
	b.bounds = r
}

func (s *Space[T]) detach(b *Body[T]) {
	s.space.Remove(b.shape)
	delete(s.bodies, b.shape)
	b.shape = nil
}
