// Package physics is the collision layer: axis-aligned shapes in a resolv
// space, overlap probes and the few resolution rules the simulation needs.
// World coordinates are Y-up and must stay inside the space bounds.
package physics

import "gonum.org/v1/gonum/spatial/r2"

// Rect is an axis-aligned box anchored at its minimum corner.
type Rect struct {
	X, Y, W, H float64
}

// RectAt returns a w×h box centred on c.
func RectAt(c r2.Vec, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) MinX() float64   { return r.X }
func (r Rect) MaxX() float64   { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y }
func (r Rect) Top() float64    { return r.Y + r.H }

func (r Rect) Center() r2.Vec {
	return r2.Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports strict interior overlap; touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) Contains(p r2.Vec) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) Translate(d r2.Vec) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}
