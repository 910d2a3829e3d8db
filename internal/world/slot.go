package world

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/core/ecs"
)

type SlotState uint8

const (
	SlotEmpty SlotState = iota
	SlotOccupied
)

func (s SlotState) String() string {
	if s == SlotOccupied {
		return "occupied"
	}
	return "empty"
}

// HostileStats are the per-spawn numbers of a hostile. Zero fields fall
// back to the level defaults.
type HostileStats struct {
	MaxHealth    float64
	AttackDamage float64
	Speed        float64
}

// Merge fills zero fields of s from def.
func (s HostileStats) Merge(def HostileStats) HostileStats {
	if s.MaxHealth <= 0 {
		s.MaxHealth = def.MaxHealth
	}
	if s.AttackDamage <= 0 {
		s.AttackDamage = def.AttackDamage
	}
	if s.Speed <= 0 {
		s.Speed = def.Speed
	}
	return s
}

// Slot is a fixed spawn location. Empty → Occupied on spawn, Occupied →
// Empty on despawn with the respawn timer armed.
type Slot struct {
	Index        int
	Anchor       r2.Vec
	FlipPeriod   time.Duration
	RespawnDelay time.Duration // 0 uses the level default
	Stats        HostileStats

	state   SlotState
	hostile ecs.EntityID
	armed   bool
	wait    float64 // seconds until respawn while armed
}

func (s *Slot) State() SlotState { return s.state }

// Hostile returns the occupant id; zero while empty.
func (s *Slot) Hostile() ecs.EntityID { return s.hostile }

func (s *Slot) Occupy(id ecs.EntityID) {
	s.state = SlotOccupied
	s.hostile = id
	s.armed = false
	s.wait = 0
}

// Vacate empties the slot and arms its respawn timer: the slot's own delay
// when set, otherwise fallback.
func (s *Slot) Vacate(fallback time.Duration) {
	delay := s.RespawnDelay
	if delay <= 0 {
		delay = fallback
	}
	s.state = SlotEmpty
	s.hostile = ecs.EntityID(0)
	s.armed = true
	s.wait = delay.Seconds()
}

// Waiting reports whether an empty slot has a respawn pending.
func (s *Slot) Waiting() bool { return s.state == SlotEmpty && s.armed }

// Remaining is the time left on the respawn timer.
func (s *Slot) Remaining() time.Duration {
	if !s.Waiting() {
		return 0
	}
	return time.Duration(s.wait * float64(time.Second))
}

// Advance runs the respawn timer and reports whether it expired this call.
func (s *Slot) Advance(sec float64) bool {
	if !s.Waiting() {
		return false
	}
	s.wait -= sec
	if s.wait > 0 {
		return false
	}
	s.armed = false
	s.wait = 0
	return true
}
