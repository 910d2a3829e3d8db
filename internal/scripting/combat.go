package scripting

import (
	lua "github.com/yuin/gopher-lua"
)

// ContactContext holds pre-packed data for a hostile touching the player.
type ContactContext struct {
	AttackDamage    float64
	PlayerHealth    float64
	PlayerMaxHealth float64
	PlayerMoving    bool
}

// DashContext holds pre-packed data for a dash passing through a hostile.
type DashContext struct {
	BaseDamage       float64
	HostileHealth    float64
	HostileMaxHealth float64
}

// BounceContext holds pre-packed data for a stomp.
type BounceContext struct {
	BaseVelocity     float64
	HostileMaxHealth float64
}

// CalcContactDamage calls the Lua calc_contact_damage function.
func (e *Engine) CalcContactDamage(ctx ContactContext) float64 {
	t := e.vm.NewTable()
	t.RawSetString("attack_damage", lua.LNumber(ctx.AttackDamage))
	t.RawSetString("player_hp", lua.LNumber(ctx.PlayerHealth))
	t.RawSetString("player_max_hp", lua.LNumber(ctx.PlayerMaxHealth))
	t.RawSetString("player_moving", lua.LBool(ctx.PlayerMoving))

	v, ok := e.call("calc_contact_damage", t)
	if !ok {
		return ctx.AttackDamage
	}
	return nonNegative(v)
}

// CalcDashDamage calls the Lua calc_dash_damage function.
func (e *Engine) CalcDashDamage(ctx DashContext) float64 {
	t := e.vm.NewTable()
	t.RawSetString("base_damage", lua.LNumber(ctx.BaseDamage))
	t.RawSetString("hostile_hp", lua.LNumber(ctx.HostileHealth))
	t.RawSetString("hostile_max_hp", lua.LNumber(ctx.HostileMaxHealth))

	v, ok := e.call("calc_dash_damage", t)
	if !ok {
		return ctx.BaseDamage
	}
	return nonNegative(v)
}

// BounceVelocity calls the Lua calc_bounce_velocity function.
func (e *Engine) BounceVelocity(ctx BounceContext) float64 {
	t := e.vm.NewTable()
	t.RawSetString("base_velocity", lua.LNumber(ctx.BaseVelocity))
	t.RawSetString("hostile_max_hp", lua.LNumber(ctx.HostileMaxHealth))

	v, ok := e.call("calc_bounce_velocity", t)
	if !ok {
		return ctx.BaseVelocity
	}
	return nonNegative(v)
}

func nonNegative(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	return v
}
