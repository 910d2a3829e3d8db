package health

import (
	"math"
	"time"
)

// Decay drains Rate hit points per second while alive.
type Decay struct {
	Rate float64
}

func (d *Decay) Apply(h *Health, seconds float64) {
	h.Damage(d.Rate * seconds)
}

// MoveOrDie heals while its owner moves and drains while it stands still.
// It is fed by the movement controller through OnMovementStateChanged.
type MoveOrDie struct {
	Regen  float64 // hit points per second while moving
	Drain  float64 // hit points per second while stationary
	moving bool
}

// OnMovementStateChanged implements movement.Observer.
func (m *MoveOrDie) OnMovementStateChanged(moving bool) {
	m.moving = moving
}

func (m *MoveOrDie) Moving() bool { return m.moving }

func (m *MoveOrDie) Apply(h *Health, seconds float64) {
	if m.moving {
		h.Heal(m.Regen * seconds)
	} else {
		h.Damage(m.Drain * seconds)
	}
}

// TimedDamage deals Rate hit points per second until its armed window runs
// out.
type TimedDamage struct {
	Rate      float64
	remaining float64
}

func (t *TimedDamage) Arm(d time.Duration) {
	t.remaining = math.Max(t.remaining, d.Seconds())
}

func (t *TimedDamage) Active() bool { return t.remaining > 0 }

func (t *TimedDamage) Remaining() time.Duration {
	return time.Duration(t.remaining * float64(time.Second))
}

func (t *TimedDamage) Apply(h *Health, seconds float64) {
	if t.remaining <= 0 {
		return
	}
	step := math.Min(seconds, t.remaining)
	t.remaining = math.Max(0, t.remaining-seconds)
	h.Damage(t.Rate * step)
}

func (t *TimedDamage) Reset() { t.remaining = 0 }
