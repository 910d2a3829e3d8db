package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/ashgrove/dashcore/internal/core/registry"
	"github.com/ashgrove/dashcore/internal/physics"
	"github.com/ashgrove/dashcore/internal/world"
)

// Hazard is static geometry that hurts the player on entry. Lethal hazards
// (kill zones) ignore Damage and drain all remaining health. Burn arms the
// player's timed damage window on entry.
type Hazard struct {
	Area   physics.Rect
	Damage float64
	Lethal bool
	Burn   time.Duration

	inside bool
}

// HazardSystem applies hazards to the player once per entry, and treats
// leaving the bottom of the world as a kill zone.
type HazardSystem struct {
	hazards []*Hazard
	floor   float64
	reg     *registry.Registry
	log     *zap.Logger
}

func NewHazardSystem(hazards []*Hazard, bounds physics.Rect, reg *registry.Registry, log *zap.Logger) *HazardSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &HazardSystem{hazards: hazards, floor: bounds.Bottom(), reg: reg, log: log}
}

func (s *HazardSystem) Tick(_ time.Duration) {
	p, ok := registry.Lookup[*world.Player](s.reg)
	if !ok || p == nil || !p.Alive() {
		return
	}
	box := p.Body().Bounds()

	for _, hz := range s.hazards {
		in := box.Overlaps(hz.Area)
		entered := in && !hz.inside
		hz.inside = in
		if !entered {
			continue
		}
		if hz.Lethal {
			s.log.Info("player entered kill zone", zap.String("pos", world.FormatVec(p.Position())))
			p.ApplyDamage(p.Health().Current())
		} else {
			p.ApplyDamage(hz.Damage)
			if hz.Burn > 0 && !p.Health().StartTimedDamage(hz.Burn) {
				s.log.Debug("burn ignored, player has no timed damage policy")
			}
		}
		if !p.Alive() {
			return
		}
	}

	if box.Top() < s.floor {
		s.log.Info("player fell out of the world", zap.String("pos", world.FormatVec(p.Position())))
		p.ApplyDamage(p.Health().Current())
	}
}
