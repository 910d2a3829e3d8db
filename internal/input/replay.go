// Package input turns recorded input scripts into per-frame intents.
package input

import (
	"github.com/ashgrove/dashcore/internal/data"
	"github.com/ashgrove/dashcore/internal/movement"
)

// Replay plays an InputScript back one frame per Intent call. It
// implements movement.IntentSource.
type Replay struct {
	segments []data.InputSegment
	loop     bool
	seg      int
	frame    int
	played   int
}

func NewReplay(script *data.InputScript) *Replay {
	r := &Replay{}
	if script != nil {
		r.segments = script.Segments
		r.loop = script.Loop
	}
	return r
}

// Intent returns the current frame's intent and advances. A finished
// script yields the zero intent.
func (r *Replay) Intent() movement.Intent {
	if r.Done() {
		return movement.Intent{}
	}
	s := r.segments[r.seg]
	in := movement.Intent{
		Horizontal: s.Horizontal,
		Vertical:   s.Vertical,
		Jump:       s.Jump,
		Dash:       s.Dash,
	}
	r.played++
	r.frame++
	if r.frame >= s.Frames {
		r.frame = 0
		r.seg++
		if r.seg >= len(r.segments) && r.loop {
			r.seg = 0
		}
	}
	return in
}

// Done reports whether a non-looping script has run out.
func (r *Replay) Done() bool {
	return r.seg >= len(r.segments)
}

// Played returns the number of frames consumed.
func (r *Replay) Played() int { return r.played }
