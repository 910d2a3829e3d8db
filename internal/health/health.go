// Package health is the hit-point state machine shared by the player and
// hostiles. A Health is Alive while current > 0 and Dead once it reaches 0;
// Dead is terminal until Reset starts a new life. Variants are built by
// attaching policies instead of subclassing.
package health

import (
	"math"
	"time"

	"github.com/ashgrove/dashcore/internal/core/event"
)

// Policy is a per-tick behaviour attached to a Health.
type Policy interface {
	Apply(h *Health, seconds float64)
}

// resetter is implemented by policies holding per-life state.
type resetter interface {
	Reset()
}

type Option func(*Health)

// WithPolicy attaches p; policies run in attachment order each Tick.
func WithPolicy(p Policy) Option {
	return func(h *Health) {
		h.policies = append(h.policies, p)
		if td, ok := p.(*TimedDamage); ok && h.timed == nil {
			h.timed = td
		}
	}
}

// WithDecay drains rate hit points per second.
func WithDecay(rate float64) Option {
	return WithPolicy(&Decay{Rate: rate})
}

// WithTimedDamage enables StartTimedDamage at rate hit points per second.
func WithTimedDamage(rate float64) Option {
	return WithPolicy(&TimedDamage{Rate: rate})
}

// OnDeath subscribes fn for the lifetime of the Health.
func OnDeath(fn func()) Option {
	return func(h *Health) { h.death.Subscribe(fn) }
}

// OnChanged subscribes fn for the lifetime of the Health.
func OnChanged(fn func(current, max float64)) Option {
	return func(h *Health) { h.changed.Subscribe(fn) }
}

// Health tracks hit points. 0 <= Current() <= Max() holds after every call.
type Health struct {
	current  float64
	max      float64
	dead     bool
	policies []Policy
	timed    *TimedDamage
	changed  event.Listeners[func(current, max float64)]
	death    event.Listeners[func()]
}

func New(max float64, opts ...Option) *Health {
	if math.IsNaN(max) || max < 0 {
		max = 0
	}
	h := &Health{current: max, max: max, dead: max == 0}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Health) Current() float64 { return h.current }
func (h *Health) Max() float64     { return h.max }
func (h *Health) Alive() bool      { return !h.dead }
func (h *Health) Dead() bool       { return h.dead }

func (h *Health) Percent() float64 {
	if h.max == 0 {
		return 0
	}
	return h.current / h.max
}

// Damage lowers health by amount. Non-positive amounts are ignored, so
// damage can never heal. Reaching 0 fires the death listeners once per life.
func (h *Health) Damage(amount float64) {
	if h.dead || !(amount > 0) {
		return
	}
	prev := h.current
	h.current = math.Max(0, h.current-amount)
	died := h.current == 0
	if died {
		h.dead = true
	}
	if h.current != prev {
		h.notifyChanged()
	}
	if died {
		h.death.Each(func(fn func()) { fn() })
	}
}

// Heal raises health by amount up to Max. Dead entities stay at 0.
func (h *Health) Heal(amount float64) {
	if h.dead || !(amount > 0) {
		return
	}
	prev := h.current
	h.current = math.Min(h.max, h.current+amount)
	if h.current != prev {
		h.notifyChanged()
	}
}

// Kill drops health straight to 0.
func (h *Health) Kill() {
	h.Damage(h.current)
}

// Reset starts a new life at full health.
func (h *Health) Reset() {
	prev := h.current
	h.current = h.max
	h.dead = h.max == 0
	for _, p := range h.policies {
		if r, ok := p.(resetter); ok {
			r.Reset()
		}
	}
	if h.current != prev {
		h.notifyChanged()
	}
}

// Tick runs the attached policies. It satisfies system.Updatable.
func (h *Health) Tick(dt time.Duration) {
	sec := dt.Seconds()
	for _, p := range h.policies {
		if h.dead {
			return
		}
		p.Apply(h, sec)
	}
}

// StartTimedDamage arms the timed damage window for d. Re-arming while
// active extends the window to max(remaining, d) instead of stacking.
// Returns false when no TimedDamage policy is attached.
func (h *Health) StartTimedDamage(d time.Duration) bool {
	if h.timed == nil || h.dead {
		return false
	}
	h.timed.Arm(d)
	return true
}

func (h *Health) SubscribeChanged(fn func(current, max float64)) *event.Subscription {
	return h.changed.Subscribe(fn)
}

func (h *Health) SubscribeDeath(fn func()) *event.Subscription {
	return h.death.Subscribe(fn)
}

func (h *Health) notifyChanged() {
	cur, max := h.current, h.max
	h.changed.Each(func(fn func(float64, float64)) { fn(cur, max) })
}
