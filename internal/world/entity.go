package world

import "github.com/ashgrove/dashcore/internal/physics"

// Entity is a pooled hostile body. Activation toggles its shapes in the
// collision space so pooled entities never collide.
type Entity struct {
	body   *physics.Body
	active bool
}

func NewEntity(body *physics.Body) *Entity {
	return &Entity{body: body}
}

// SetActive implements ecs.Activatable.
func (e *Entity) SetActive(active bool) {
	e.active = active
	e.body.SetEnabled(active)
}

func (e *Entity) Active() bool         { return e.active }
func (e *Entity) Body() *physics.Body { return e.body }
