package physics

import "gonum.org/v1/gonum/spatial/r2"

// BodySpec sizes a body's shapes. A zero PhysicalSize means the body has
// only a trigger shape.
type BodySpec struct {
	TriggerSize  r2.Vec
	PhysicalSize r2.Vec
	Tags         []string
}

// Body is an entity's collision footprint: a trigger shape for damage
// contact and an optional physical shape for geometry, both centred on the
// body position.
type Body struct {
	space    *Space
	position r2.Vec
	trigger  *Shape
	physical *Shape
	enabled  bool
}

// NewBody creates a disabled body at pos.
func (s *Space) NewBody(pos r2.Vec, spec BodySpec) *Body {
	b := &Body{space: s, position: pos}
	b.trigger = s.newShape(RectAt(pos, spec.TriggerSize.X, spec.TriggerSize.Y), spec.Tags...)
	if spec.PhysicalSize.X > 0 && spec.PhysicalSize.Y > 0 {
		b.physical = s.newShape(RectAt(pos, spec.PhysicalSize.X, spec.PhysicalSize.Y), spec.Tags...)
	}
	return b
}

func (b *Body) Position() r2.Vec { return b.position }

// Space returns the space the body lives in.
func (b *Body) Space() *Space { return b.space }

func (b *Body) SetPosition(p r2.Vec) {
	b.position = p
	b.place(b.trigger)
	if b.physical != nil {
		b.place(b.physical)
	}
}

func (b *Body) Translate(d r2.Vec) {
	b.SetPosition(r2.Add(b.position, d))
}

func (b *Body) place(sh *Shape) {
	r := sh.Bounds()
	sh.moveTo(b.position.X-r.W/2, b.position.Y-r.H/2)
}

// Trigger returns the contact shape's box.
func (b *Body) Trigger() Rect { return b.trigger.Bounds() }

// Bounds returns the physical box, falling back to the trigger box.
func (b *Body) Bounds() Rect {
	if b.physical != nil {
		return b.physical.Bounds()
	}
	return b.trigger.Bounds()
}

func (b *Body) HasPhysical() bool { return b.physical != nil }

func (b *Body) Enabled() bool { return b.enabled }

func (b *Body) SetEnabled(enabled bool) {
	b.enabled = enabled
	b.trigger.SetEnabled(enabled)
	if b.physical != nil {
		b.physical.SetEnabled(enabled)
	}
}

// TriggerOverlaps reports whether b's trigger overlaps other's bounds.
func (b *Body) TriggerOverlaps(other *Body) bool {
	if !b.enabled || !other.enabled {
		return false
	}
	return b.Trigger().Overlaps(other.Bounds())
}

const snapEpsilon = 1e-9

// SnapToGround lifts a body whose bounds sink into ground geometry so its
// bottom rests on the highest ground top it overlaps. Penetration deeper
// than maxDepth is left alone.
func (b *Body) SnapToGround(maxDepth float64) bool {
	bounds := b.Bounds()
	top := bounds.Bottom()
	for _, g := range b.space.Query(bounds, TagGround) {
		gt := g.Bounds().Top()
		if gt > top+snapEpsilon && gt-bounds.Bottom() <= maxDepth {
			top = gt
		}
	}
	if top <= bounds.Bottom() {
		return false
	}
	b.Translate(r2.Vec{Y: top - bounds.Bottom()})
	return true
}
