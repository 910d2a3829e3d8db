package system

import (
	"time"

	"github.com/ashgrove/dashcore/internal/core/event"
)

// DispatchSystem delivers the events emitted last frame. Registered first
// so every other system sees them before it ticks.
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Tick(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
