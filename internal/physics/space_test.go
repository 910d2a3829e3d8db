package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestSpace() *Space {
	s := NewSpace(40, 20, 2)
	s.AddStatic(Rect{X: 0, Y: 0, W: 40, H: 1}, TagGround)
	s.AddStatic(Rect{X: 30, Y: 1, W: 1, H: 5}, TagWall)
	return s
}

func TestRectOverlapIsStrict(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 1, H: 1}
	assert.True(t, a.Overlaps(Rect{X: 0.5, Y: 0.5, W: 1, H: 1}))
	assert.False(t, a.Overlaps(Rect{X: 1, Y: 0, W: 1, H: 1}), "shared edge")
	assert.False(t, a.Overlaps(Rect{X: 3, Y: 3, W: 1, H: 1}))

	c := RectAt(r2.Vec{X: 2, Y: 2}, 2, 4)
	assert.Equal(t, 1.0, c.MinX())
	assert.Equal(t, 0.0, c.Bottom())
	assert.Equal(t, 4.0, c.Top())
	assert.Equal(t, r2.Vec{X: 2, Y: 2}, c.Center())
}

func TestQueryFiltersByTagAndExactBox(t *testing.T) {
	s := newTestSpace()

	assert.True(t, s.Probe(Rect{X: 5, Y: 0.8, W: 0.2, H: 0.2}, TagGround))
	assert.False(t, s.Probe(Rect{X: 5, Y: 1.05, W: 0.2, H: 0.2}, TagGround), "same cell, no exact overlap")
	assert.False(t, s.Probe(Rect{X: 5, Y: 0.8, W: 0.2, H: 0.2}, TagWall))

	hits := s.Query(Rect{X: 29.5, Y: 2, W: 1, H: 1}, TagWall)
	require.Len(t, hits, 1)
	assert.True(t, hits[0].HasTag(TagWall))
	assert.False(t, hits[0].HasTag(TagGround))
}

func TestDisabledShapesAreInvisible(t *testing.T) {
	s := newTestSpace()
	b := s.NewBody(r2.Vec{X: 10, Y: 3}, BodySpec{TriggerSize: r2.Vec{X: 1, Y: 1}, Tags: []string{TagHostile}})

	probe := Rect{X: 9.8, Y: 2.8, W: 0.4, H: 0.4}
	assert.False(t, s.Probe(probe, TagHostile), "new bodies start disabled")

	b.SetEnabled(true)
	assert.True(t, s.Probe(probe, TagHostile))

	b.SetEnabled(false)
	assert.False(t, s.Probe(probe, TagHostile))
}

func TestBodyMovesShapesTogether(t *testing.T) {
	s := newTestSpace()
	b := s.NewBody(r2.Vec{X: 5, Y: 5}, BodySpec{
		TriggerSize:  r2.Vec{X: 2, Y: 2},
		PhysicalSize: r2.Vec{X: 1, Y: 1},
	})
	b.SetEnabled(true)
	b.Translate(r2.Vec{X: 1, Y: -1})

	assert.Equal(t, r2.Vec{X: 6, Y: 4}, b.Position())
	assert.Equal(t, Rect{X: 5, Y: 3, W: 2, H: 2}, b.Trigger())
	assert.Equal(t, Rect{X: 5.5, Y: 3.5, W: 1, H: 1}, b.Bounds())
	assert.True(t, b.HasPhysical())
}

func TestTriggerOverlapNeedsBothEnabled(t *testing.T) {
	s := newTestSpace()
	hostile := s.NewBody(r2.Vec{X: 5, Y: 2}, BodySpec{TriggerSize: r2.Vec{X: 1, Y: 1}})
	player := s.NewBody(r2.Vec{X: 5.5, Y: 2}, BodySpec{TriggerSize: r2.Vec{X: 1, Y: 1}})
	hostile.SetEnabled(true)

	assert.False(t, hostile.TriggerOverlaps(player))
	player.SetEnabled(true)
	assert.True(t, hostile.TriggerOverlaps(player))
}

func TestSnapToGround(t *testing.T) {
	s := newTestSpace()
	b := s.NewBody(r2.Vec{X: 5, Y: 1.3}, BodySpec{TriggerSize: r2.Vec{X: 1, Y: 1}})
	b.SetEnabled(true)

	require.True(t, b.SnapToGround(0.5))
	assert.InDelta(t, 1.0, b.Bounds().Bottom(), 1e-9)
	assert.False(t, b.SnapToGround(0.5), "already resting")
}
