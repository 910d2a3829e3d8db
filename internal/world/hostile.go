package world

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/core/ecs"
	"github.com/ashgrove/dashcore/internal/core/event"
	"github.com/ashgrove/dashcore/internal/health"
)

// Hostile is the runtime record of one spawned hostile.
// Accessed only from the simulation goroutine, no locks.
type Hostile struct {
	ID     ecs.EntityID
	Entity *Entity
	Slot   int // owning slot index

	Direction    float64 // -1 left, +1 right
	Speed        float64
	FlipTimer    float64 // seconds since the last turn
	MaxFlipTimer float64 // seconds between turns, 0 = wall probe only

	Health       *health.Health
	AttackDamage float64

	// Contact damage rate limit. The cooldown timer counts up once a hit
	// lands and clears the flag at the reset threshold. SeparatedFor counts
	// up while not overlapping the player and clears it after the grace.
	DamageCooldownActive bool
	DamageCooldownTimer  float64
	SeparatedFor         float64

	Dying bool
	Cause event.DeathCause
}

func (h *Hostile) Position() r2.Vec { return h.Entity.Body().Position() }

// Kill flags the hostile for removal at the end of the tick. The first
// cause wins.
func (h *Hostile) Kill(cause event.DeathCause) {
	if h.Dying {
		return
	}
	h.Dying = true
	h.Cause = cause
}
