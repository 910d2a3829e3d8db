package physics

import (
	"math"

	"github.com/solarlune/resolv"
)

// Collision layer tags.
const (
	TagGround  = "ground"
	TagWall    = "wall"
	TagGoal    = "goal"
	TagHazard  = "hazard"
	TagPlayer  = "player"
	TagHostile = "hostile"

	tagQuery = "query"
)

// minQueryExtent keeps degenerate probes from having zero area.
const minQueryExtent = 1e-3

// Space wraps a resolv space: resolv does the cell broad-phase, Rect does
// the exact AABB test.
type Space struct {
	space  *resolv.Space
	query  *resolv.Object
	bounds Rect
}

// NewSpace creates a width×height space partitioned into cellSize cells.
func NewSpace(width, height float64, cellSize int) *Space {
	if cellSize < 1 {
		cellSize = 1
	}
	w := int(math.Ceil(width))
	h := int(math.Ceil(height))
	rs := resolv.NewSpace(w, h, cellSize, cellSize)
	q := resolv.NewObject(0, 0, minQueryExtent, minQueryExtent, tagQuery)
	rs.Add(q)
	return &Space{
		space:  rs,
		query:  q,
		bounds: Rect{W: float64(w), H: float64(h)},
	}
}

// Bounds returns the extent of the space.
func (s *Space) Bounds() Rect { return s.bounds }

// AddStatic adds fixed level geometry.
func (s *Space) AddStatic(r Rect, tags ...string) *Shape {
	sh := s.newShape(r, tags...)
	sh.SetEnabled(true)
	return sh
}

// Query returns every enabled shape carrying tag whose box overlaps r.
func (s *Space) Query(r Rect, tag string) []*Shape {
	s.query.X, s.query.Y = r.X, r.Y
	s.query.W = math.Max(r.W, minQueryExtent)
	s.query.H = math.Max(r.H, minQueryExtent)
	s.query.Update()

	col := s.query.Check(0, 0, tag)
	if col == nil {
		return nil
	}
	var hits []*Shape
	for _, o := range col.Objects {
		sh, ok := o.Data.(*Shape)
		if !ok || !sh.enabled {
			continue
		}
		if sh.Bounds().Overlaps(r) {
			hits = append(hits, sh)
		}
	}
	return hits
}

// Probe reports whether any shape carrying tag overlaps r.
func (s *Space) Probe(r Rect, tag string) bool {
	return len(s.Query(r, tag)) > 0
}

func (s *Space) newShape(r Rect, tags ...string) *Shape {
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tags...)
	sh := &Shape{obj: obj, space: s, tags: tags}
	obj.Data = sh
	return sh
}

// Shape is one collision box living in a Space.
type Shape struct {
	obj     *resolv.Object
	space   *Space
	tags    []string
	enabled bool
}

func (sh *Shape) Bounds() Rect {
	return Rect{X: sh.obj.X, Y: sh.obj.Y, W: sh.obj.W, H: sh.obj.H}
}

func (sh *Shape) HasTag(tag string) bool {
	for _, t := range sh.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (sh *Shape) Enabled() bool { return sh.enabled }

// SetEnabled adds the shape to or removes it from the space. Disabled
// shapes are invisible to every query.
func (sh *Shape) SetEnabled(enabled bool) {
	if sh.enabled == enabled {
		return
	}
	sh.enabled = enabled
	if enabled {
		sh.space.space.Add(sh.obj)
		sh.obj.Update()
	} else {
		sh.space.space.Remove(sh.obj)
	}
}

func (sh *Shape) moveTo(x, y float64) {
	sh.obj.X, sh.obj.Y = x, y
	if sh.enabled {
		sh.obj.Update()
	}
}
