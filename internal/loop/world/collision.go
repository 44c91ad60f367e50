package world

import (
	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

// collectMeteors fills the cached slice with the live meteors.
func (w *World) collectMeteors() []*object.Meteor {
	w.meteorCache = w.meteorCache[:0]
	for _, obj := range w.Objects {
		if m, ok := obj.(*object.Meteor); ok && !m.IsDestroyed() {
			w.meteorCache = append(w.meteorCache, m)
		}
	}
	return w.meteorCache
}

// checkCollisions resolves bullet hits first, then meteors striking the
// player, and compacts destroyed objects out of the world.
func (w *World) checkCollisions() {
	destroyed := false

	// Bullets vs meteors, bounding boxes. The meteor list is collected
	// up front, so replacements are not tested in this pass.
	for _, m := range w.collectMeteors() {
		if !w.shootDown(m) {
			continue
		}
		destroyed = true
		cx, cy := m.Center()
		w.score += config.ScoreMeteorHit
		w.emit(EventMeteorDestroyed, cx, cy)
		w.Spawn(object.NewExplosion(cx, cy, object.ExplosionLarge, w.now))
		w.replaceMeteor(m)
	}

	// Meteors vs player, circles.
	px, py := w.player.Rect.Center()
	pr := w.player.Radius()
	for _, m := range w.collectMeteors() {
		mx, my := m.Center()
		if !physics.CirclesOverlap(px, py, pr, mx, my, m.Radius) {
			continue
		}
		destroyed = true
		w.player.Damage(config.MeteorDamage)
		w.emit(EventPlayerHit, mx, my)
		w.Spawn(object.NewExplosion(mx, my, object.ExplosionSmall, w.now))
		w.replaceMeteor(m)
	}

	if destroyed {
		w.compact()
	}
}

// shootDown destroys every live bullet overlapping m and reports whether
// there was one.
func (w *World) shootDown(m *object.Meteor) bool {
	body := w.bodies[m]
	hit := false
	for _, other := range w.space.Overlapping(body, tagBullet) {
		b, ok := other.Owner.(*object.Bullet)
		if !ok || b.IsDestroyed() {
			continue
		}
		b.MarkDestroyed()
		w.removeObject(b)
		hit = true
	}
	return hit
}

// replaceMeteor destroys m and adds a fresh meteor in its place.
func (w *World) replaceMeteor(m *object.Meteor) {
	m.MarkDestroyed()
	w.removeObject(m)
	w.addObject(object.NewMeteor(w.rand, w.screen, w.now))
}

// compact drops destroyed objects from the object list.
func (w *World) compact() {
	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		if d, ok := obj.(object.Destructible); ok && d.IsDestroyed() {
			continue
		}
		kept = append(kept, obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
}
