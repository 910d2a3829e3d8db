package game

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/config"
	"github.com/ashgrove/dashcore/internal/data"
	"github.com/ashgrove/dashcore/internal/movement"
	"github.com/ashgrove/dashcore/internal/physics"
	"github.com/ashgrove/dashcore/internal/system"
	"github.com/ashgrove/dashcore/internal/world"
)

func toVec(v data.Vec) r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

func toRect(b data.Box) physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func buildGeometry(space *physics.Space, level *data.Level) {
	for _, b := range level.Ground {
		space.AddStatic(toRect(b), physics.TagGround)
	}
	for _, b := range level.Walls {
		space.AddStatic(toRect(b), physics.TagWall)
	}
	if level.Goal != nil {
		space.AddStatic(toRect(*level.Goal), physics.TagGoal)
	}
	for _, h := range level.Hazards {
		space.AddStatic(toRect(h.Box), physics.TagHazard)
	}
}

func buildSlots(level *data.Level) []*world.Slot {
	slots := make([]*world.Slot, 0, len(level.Slots))
	for _, s := range level.Slots {
		slots = append(slots, &world.Slot{
			Anchor:       toVec(s.Anchor),
			FlipPeriod:   seconds(s.FlipPeriod),
			RespawnDelay: seconds(s.RespawnDelay),
			Stats: world.HostileStats{
				MaxHealth:    s.Stats.MaxHealth,
				AttackDamage: s.Stats.AttackDamage,
				Speed:        s.Stats.Speed,
			},
		})
	}
	return slots
}

func buildHazards(level *data.Level) []*system.Hazard {
	hazards := make([]*system.Hazard, 0, len(level.Hazards))
	for _, h := range level.Hazards {
		hazards = append(hazards, &system.Hazard{
			Area:   toRect(h.Box),
			Damage: h.Damage,
			Lethal: h.Lethal,
			Burn:   seconds(h.Burn),
		})
	}
	return hazards
}

func movementConfig(pc config.PlayerConfig) movement.Config {
	facing := r2.Vec{X: 1}
	if pc.FacingLeft {
		facing = r2.Vec{X: -1}
	}
	return movement.Config{
		MaxSpeed:      pc.MaxSpeed,
		Accel:         pc.Accel,
		Decel:         pc.Decel,
		JumpImpulse:   pc.JumpImpulse,
		Gravity:       pc.Gravity,
		ProbeOffset:   pc.ProbeOffset,
		ProbeRadius:   pc.ProbeRadius,
		DashSpeed:     pc.DashSpeed,
		DashDuration:  pc.DashDuration,
		DashCooldown:  pc.DashCooldown,
		DashDamping:   pc.DashDamping,
		MoveThreshold: pc.MoveThreshold,
		DefaultFacing: facing,
		SnapDepth:     pc.SnapDepth,
	}
}

func levelConfig(cfg *config.Config) system.LevelConfig {
	hc := cfg.Hostile
	size := r2.Vec{X: hc.Width, Y: hc.Height}
	return system.LevelConfig{
		Defaults: world.HostileStats{
			MaxHealth:    hc.MaxHealth,
			AttackDamage: hc.AttackDamage,
			Speed:        hc.Speed,
		},
		TriggerSize:   size,
		PhysicalSize:  size,
		Decay:         hc.DecayRate,
		RespawnDelay:  cfg.Respawn.Delay,
		PoolCapacity:  hc.PoolCapacity,
		PatrolProbe:   hc.PatrolProbe,
		RandomHeading: hc.RandomHeading,
		Seed:          hc.Seed,
		Combat: system.CombatRules{
			DashDamage:        cfg.Combat.DashDamage,
			BounceVelocity:    cfg.Combat.BounceVelocity,
			JumpKillTolerance: cfg.Combat.JumpKillTolerance,
			CooldownReset:     cfg.Combat.CooldownReset,
			SeparationGrace:   cfg.Combat.SeparationGrace,
		},
	}
}
