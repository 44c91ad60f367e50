package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tagRock = NewTag("rock")
	tagShot = NewTag("shot")
)

func newTestSpace() *Space[string] {
	return NewSpace[string](800, 800, 50, 200)
}

func owners(bodies []*Body[string]) []string {
	var out []string
	for _, b := range bodies {
		out = append(out, b.Owner)
	}
	return out
}

func TestSpaceOverlapping(t *testing.T) {
	s := newTestSpace()
	rock := s.Add("rock", Rect{X: 100, Y: 100, W: 30, H: 30}, tagRock)
	s.Add("hit", Rect{X: 110, Y: 110, W: 5, H: 10}, tagShot)
	s.Add("miss", Rect{X: 400, Y: 400, W: 5, H: 10}, tagShot)

	hits := s.Overlapping(rock, tagShot)
	assert.Equal(t, []string{"hit"}, owners(hits))
	assert.Equal(t, 3, s.Len())
}

func TestSpaceContainedBoxes(t *testing.T) {
	s := newTestSpace()
	rock := s.Add("rock", Rect{X: 100, Y: 100, W: 35, H: 35}, tagRock)
	shot := s.Add("shot", Rect{X: 115, Y: 112, W: 5, H: 10}, tagShot)
	// Same cell, no overlap.
	s.Add("near", Rect{X: 140, Y: 100, W: 5, H: 10}, tagShot)

	assert.Equal(t, []string{"shot"}, owners(s.Overlapping(rock, tagShot)))
	assert.Equal(t, []string{"rock"}, owners(s.Overlapping(shot, tagRock)))
}

func TestSpaceTouchingEdgesDoNotOverlap(t *testing.T) {
	s := newTestSpace()
	rock := s.Add("rock", Rect{X: 100, Y: 100, W: 30, H: 30}, tagRock)
	s.Add("shot", Rect{X: 130, Y: 110, W: 5, H: 10}, tagShot)

	assert.Empty(t, s.Overlapping(rock, tagShot))
}

func TestSpaceFiltersByTag(t *testing.T) {
	s := newTestSpace()
	rock := s.Add("rock", Rect{X: 100, Y: 100, W: 30, H: 30}, tagRock)
	s.Add("other-rock", Rect{X: 105, Y: 105, W: 30, H: 30}, tagRock)

	assert.Empty(t, s.Overlapping(rock, tagShot))
	assert.Equal(t, []string{"other-rock"}, owners(s.Overlapping(rock, tagRock)))
}

func TestSpaceOffscreenBodies(t *testing.T) {
	s := newTestSpace()
	// Meteor still partly above the top edge.
	rock := s.Add("rock", Rect{X: 300, Y: -20, W: 30, H: 30}, tagRock)
	s.Add("shot", Rect{X: 310, Y: 2, W: 5, H: 10}, tagShot)

	assert.Equal(t, []string{"shot"}, owners(s.Overlapping(rock, tagShot)))
}

func TestSpaceMove(t *testing.T) {
	s := newTestSpace()
	rock := s.Add("rock", Rect{X: 100, Y: 100, W: 30, H: 30}, tagRock)
	shot := s.Add("shot", Rect{X: 500, Y: 500, W: 5, H: 10}, tagShot)

	require.Empty(t, s.Overlapping(rock, tagShot))

	s.Move(shot, Rect{X: 112, Y: 112, W: 5, H: 10})
	assert.Equal(t, []string{"shot"}, owners(s.Overlapping(rock, tagShot)))
	assert.Equal(t, 112.0, shot.Bounds().X)
}

func TestSpaceMoveResizes(t *testing.T) {
	s := newTestSpace()
	rock := s.Add("rock", Rect{X: 100, Y: 100, W: 30, H: 30}, tagRock)
	s.Add("shot", Rect{X: 136, Y: 110, W: 5, H: 10}, tagShot)

	require.Empty(t, s.Overlapping(rock, tagShot))

	// Rotation grows the bounding box to 44x44 around the same center.
	s.Move(rock, Rect{X: 100, Y: 100, W: 30, H: 30}.Resize(44, 44))
	assert.Equal(t, []string{"shot"}, owners(s.Overlapping(rock, tagShot)))
	assert.Equal(t, 2, s.Len())
}

func TestSpaceRemove(t *testing.T) {
	s := newTestSpace()
	rock := s.Add("rock", Rect{X: 100, Y: 100, W: 30, H: 30}, tagRock)
	shot := s.Add("shot", Rect{X: 110, Y: 110, W: 5, H: 10}, tagShot)

	s.Remove(shot)
	s.Remove(shot)

	assert.Empty(t, s.Overlapping(rock, tagShot))
	assert.Equal(t, 1, s.Len())

	// Moving a removed body does not resurrect it.
	s.Move(shot, Rect{X: 110, Y: 110, W: 5, H: 10})
	assert.Equal(t, 1, s.Len())
}
