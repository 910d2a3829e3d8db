package world

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/core/event"
	"github.com/ashgrove/dashcore/internal/core/registry"
	coresys "github.com/ashgrove/dashcore/internal/core/system"
	"github.com/ashgrove/dashcore/internal/health"
	"github.com/ashgrove/dashcore/internal/movement"
	"github.com/ashgrove/dashcore/internal/physics"
)

// Player ties the controlled body to its movement controller and health.
// Combat systems find it through the service registry.
type Player struct {
	move *movement.Controller
	hp   *health.Health
	reg  *registry.Registry
	bus  *event.Bus
	log  *zap.Logger

	sched    *coresys.Scheduler
	scope    event.Scope
	uiWarned bool
}

func NewPlayer(move *movement.Controller, hp *health.Health, reg *registry.Registry, bus *event.Bus, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Player{move: move, hp: hp, reg: reg, bus: bus, log: log}
	p.scope.Add(hp.SubscribeChanged(p.onHealthChanged))
	p.scope.Add(hp.SubscribeDeath(p.onDeath))
	return p
}

// Attach registers the movement controller and then the health ticker.
func (p *Player) Attach(s *coresys.Scheduler) {
	p.sched = s
	s.RegisterUpdatable(p.move)
	s.RegisterUpdatable(p.hp)
}

// Watch ties sub's lifetime to the player's.
func (p *Player) Watch(sub *event.Subscription) {
	p.scope.Add(sub)
}

func (p *Player) Movement() *movement.Controller { return p.move }
func (p *Player) Health() *health.Health        { return p.hp }
func (p *Player) Body() *physics.Body            { return p.move.Body() }
func (p *Player) Position() r2.Vec               { return p.move.Body().Position() }
func (p *Player) Alive() bool                    { return p.hp.Alive() }

// ApplyDamage deals a discrete hit and shows it as floating text. Returns
// false when nothing landed.
func (p *Player) ApplyDamage(amount float64) bool {
	if !(amount > 0) || p.hp.Dead() {
		return false
	}
	color := ColorDamage
	if amount >= p.hp.Current() {
		color = ColorLethal
	}
	pos := p.Position()
	if ui, ok := p.ui(); ok {
		ui.ShowDamageText(pos, amount, color)
	}
	event.Emit(p.bus, event.DamageDealt{Position: pos, Amount: amount})
	p.hp.Damage(amount)
	return true
}

// Detach removes the player's updatables and drops its subscriptions.
func (p *Player) Detach() {
	p.scope.Close()
	p.unregister()
}

func (p *Player) unregister() {
	if p.sched == nil {
		return
	}
	p.sched.UnregisterUpdatable(p.move)
	p.sched.UnregisterUpdatable(p.hp)
}

func (p *Player) onHealthChanged(current, max float64) {
	if ui, ok := p.ui(); ok {
		ui.UpdateHealth(current, max)
	}
}

func (p *Player) onDeath() {
	p.log.Info("player died", zap.Stringer("pos", vecString(p.Position())))
	p.move.Stop()
	p.unregister()
	event.Emit(p.bus, event.PlayerDied{})
	if ui, ok := p.ui(); ok {
		ui.ShowDefeat()
	}
}

func (p *Player) ui() (UI, bool) {
	ui, ok := registry.Lookup[UI](p.reg)
	if !ok && !p.uiWarned {
		p.uiWarned = true
		p.log.Warn("no UI registered, damage and health display disabled")
	}
	return ui, ok
}
