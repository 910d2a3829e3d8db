package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/dashcore/internal/data"
	"github.com/ashgrove/dashcore/internal/movement"
)

func TestReplayPlaysSegmentsInOrder(t *testing.T) {
	r := NewReplay(&data.InputScript{Segments: []data.InputSegment{
		{Frames: 2, Horizontal: 1},
		{Frames: 1, Dash: true},
	}})

	var got []movement.Intent
	for i := 0; i < 5; i++ {
		got = append(got, r.Intent())
	}
	assert.Equal(t, []movement.Intent{
		{Horizontal: 1},
		{Horizontal: 1},
		{Dash: true},
		{},
		{},
	}, got)
	assert.True(t, r.Done())
	assert.Equal(t, 3, r.Played())
}

func TestReplayLoops(t *testing.T) {
	r := NewReplay(&data.InputScript{Loop: true, Segments: []data.InputSegment{
		{Frames: 1, Jump: true},
		{Frames: 1},
	}})
	for i := 0; i < 6; i++ {
		assert.Equal(t, i%2 == 0, r.Intent().Jump)
	}
	assert.False(t, r.Done())
}

func TestNilScriptIsIdle(t *testing.T) {
	r := NewReplay(nil)
	assert.True(t, r.Done())
	assert.Equal(t, movement.Intent{}, r.Intent())
}
