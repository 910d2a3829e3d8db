package system

import (
	"time"

	"github.com/ashgrove/dashcore/internal/core/ecs"
	"github.com/ashgrove/dashcore/internal/core/event"
	"github.com/ashgrove/dashcore/internal/scripting"
	"github.com/ashgrove/dashcore/internal/world"
)

// CombatRules are the fixed numbers of player-vs-hostile combat.
type CombatRules struct {
	DashDamage     float64
	BounceVelocity float64
	// JumpKillTolerance is how far below a hostile's top the player's feet
	// may be and still count as landing on it.
	JumpKillTolerance float64
	CooldownReset     time.Duration
	SeparationGrace   time.Duration
}

func DefaultCombatRules() CombatRules {
	return CombatRules{
		DashDamage:        50,
		BounceVelocity:    8,
		JumpKillTolerance: 0.1,
		CooldownReset:     500 * time.Millisecond,
		SeparationGrace:   100 * time.Millisecond,
	}
}

// Formulas computes combat numbers. *scripting.Engine implements it.
type Formulas interface {
	CalcContactDamage(ctx scripting.ContactContext) float64
	CalcDashDamage(ctx scripting.DashContext) float64
	BounceVelocity(ctx scripting.BounceContext) float64
}

// BaseFormulas passes the configured numbers through unchanged.
type BaseFormulas struct{}

func (BaseFormulas) CalcContactDamage(ctx scripting.ContactContext) float64 { return ctx.AttackDamage }
func (BaseFormulas) CalcDashDamage(ctx scripting.DashContext) float64       { return ctx.BaseDamage }
func (BaseFormulas) BounceVelocity(ctx scripting.BounceContext) float64     { return ctx.BaseVelocity }

// strike is the player's combat state read once at the start of the
// hostile pass. Every hostile is judged against it, so stacked hostiles
// resolve the same way whatever their storage order.
type strike struct {
	player    *world.Player
	feet      float64
	vy        float64
	dashing   bool
	moving    bool
	health    float64
	maxHealth float64

	bounce  float64
	stomped bool
}

func newStrike(p *world.Player) *strike {
	if p == nil {
		return nil
	}
	move := p.Movement()
	hp := p.Health()
	return &strike{
		player:    p,
		feet:      p.Body().Bounds().Bottom(),
		vy:        move.Velocity().Y,
		dashing:   move.IsDashing(),
		moving:    move.IsMoving(),
		health:    hp.Current(),
		maxHealth: hp.Max(),
	}
}

// finish applies the strongest bounce earned during the pass.
func (st *strike) finish() {
	if st == nil || !st.stomped || !st.player.Alive() {
		return
	}
	st.player.Movement().SetVerticalVelocity(st.bounce)
}

// resolveCombat applies at most one outcome per hostile per tick, in
// precedence order: jump-kill, dash damage, contact damage.
func (c *LevelController) resolveCombat(id ecs.EntityID, h *world.Hostile, st *strike, sec float64) {
	overlap := st != nil && st.player.Alive() && h.Entity.Body().TriggerOverlaps(st.player.Body())
	if overlap {
		h.SeparatedFor = 0
		c.engage(id, h, st)
	}
	c.advanceCooldown(h, overlap, sec)
}

func (c *LevelController) engage(id ecs.EntityID, h *world.Hostile, st *strike) {
	rules := c.cfg.Combat
	top := h.Entity.Body().Bounds().Top()

	switch {
	case st.feet > top-rules.JumpKillTolerance && st.vy < 0:
		c.kill(id, event.CauseJumpKill)
		v := c.formulas.BounceVelocity(scripting.BounceContext{
			BaseVelocity:     rules.BounceVelocity,
			HostileMaxHealth: h.Health.Max(),
		})
		if !st.stomped || v > st.bounce {
			st.bounce = v
		}
		st.stomped = true

	case st.dashing:
		h.Health.Damage(c.formulas.CalcDashDamage(scripting.DashContext{
			BaseDamage:       rules.DashDamage,
			HostileHealth:    h.Health.Current(),
			HostileMaxHealth: h.Health.Max(),
		}))

	case !h.DamageCooldownActive:
		st.player.ApplyDamage(c.formulas.CalcContactDamage(scripting.ContactContext{
			AttackDamage:    h.AttackDamage,
			PlayerHealth:    st.health,
			PlayerMaxHealth: st.maxHealth,
			PlayerMoving:    st.moving,
		}))
		h.DamageCooldownActive = true
		h.DamageCooldownTimer = 0
	}
}

// advanceCooldown counts the contact cooldown up to its reset threshold,
// clearing it early once the player has been away for the grace period.
func (c *LevelController) advanceCooldown(h *world.Hostile, overlap bool, sec float64) {
	if !h.DamageCooldownActive {
		return
	}
	rules := c.cfg.Combat
	h.DamageCooldownTimer += sec
	if h.DamageCooldownTimer >= rules.CooldownReset.Seconds() {
		clearCooldown(h)
		return
	}
	if !overlap {
		h.SeparatedFor += sec
		if h.SeparatedFor >= rules.SeparationGrace.Seconds() {
			clearCooldown(h)
		}
	}
}

func clearCooldown(h *world.Hostile) {
	h.DamageCooldownActive = false
	h.DamageCooldownTimer = 0
	h.SeparatedFor = 0
}
