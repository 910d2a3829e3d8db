// Package game is the composition root: it builds every simulation
// component from config and a level and wires them in tick order.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/config"
	"github.com/ashgrove/dashcore/internal/core/event"
	"github.com/ashgrove/dashcore/internal/core/registry"
	coresys "github.com/ashgrove/dashcore/internal/core/system"
	"github.com/ashgrove/dashcore/internal/data"
	"github.com/ashgrove/dashcore/internal/health"
	"github.com/ashgrove/dashcore/internal/hud"
	"github.com/ashgrove/dashcore/internal/movement"
	"github.com/ashgrove/dashcore/internal/physics"
	"github.com/ashgrove/dashcore/internal/system"
	"github.com/ashgrove/dashcore/internal/world"
)

// Outcome is the level result so far.
type Outcome int

const (
	Running Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "running"
	}
}

// Deps are the collaborators the host may supply. Nil fields get
// defaults: an idle player, base formulas and the headless HUD.
type Deps struct {
	Input    movement.IntentSource
	Formulas system.Formulas
	UI       world.UI
	Log      *zap.Logger
}

// Game owns one running level.
type Game struct {
	Registry  *registry.Registry
	Scheduler *coresys.Scheduler
	Bus       *event.Bus
	Space     *physics.Space

	Player *world.Player
	Level  *system.LevelController
	Win    *system.WinTrigger
	HUD    *hud.HUD // nil when the host supplied its own UI

	log     *zap.Logger
	handles []*registry.Handle
	scope   event.Scope
	closed  bool
}

func New(cfg *config.Config, level *data.Level, deps Deps) (*Game, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if level == nil {
		return nil, fmt.Errorf("new game: nil level")
	}

	g := &Game{
		Registry:  registry.New(),
		Scheduler: coresys.NewScheduler(log.Named("scheduler")),
		Bus:       event.NewBus(),
		Space:     physics.NewSpace(level.Width, level.Height, level.CellSize),
		log:       log,
	}
	buildGeometry(g.Space, level)

	ui := deps.UI
	if ui == nil {
		h, err := hud.New(hud.Config{
			PoolSize: cfg.UI.DamageTextPool,
			MaxTexts: cfg.UI.DamageTextMax,
			Lifetime: cfg.UI.DamageTextLifetime,
		}, log.Named("hud"))
		if err != nil {
			return nil, fmt.Errorf("new game: %w", err)
		}
		g.HUD = h
		ui = h
	}
	g.handles = append(g.handles, registry.Register[world.UI](g.Registry, ui))

	g.Player = g.buildPlayer(cfg, level, deps.Input)
	g.handles = append(g.handles, registry.Register(g.Registry, g.Player))

	g.Level = system.NewLevelController(
		buildSlots(level),
		g.Space,
		g.Registry,
		g.Bus,
		deps.Formulas,
		levelConfig(cfg),
		log.Named("level"),
	)
	g.handles = append(g.handles, registry.Register(g.Registry, g.Level))

	// Tick order: events, player, hostiles, hazards, goal, presentation.
	g.Scheduler.RegisterUpdatable(system.NewDispatchSystem(g.Bus))
	g.Player.Attach(g.Scheduler)
	g.Scheduler.RegisterInitializable(g.Level)
	g.Scheduler.RegisterUpdatable(g.Level)
	g.Scheduler.RegisterUpdatable(system.NewHazardSystem(buildHazards(level), g.Space.Bounds(), g.Registry, log.Named("hazard")))
	if level.Goal != nil {
		g.Win = system.NewWinTrigger(toRect(*level.Goal), g.Registry, g.Bus, log.Named("win"))
		g.Scheduler.RegisterUpdatable(g.Win)
	} else {
		log.Warn("level has no goal, victory disabled", zap.String("level", level.Name))
	}
	if g.HUD != nil {
		g.Scheduler.RegisterUpdatable(g.HUD)
	}

	log.Info("game ready",
		zap.String("level", level.Name),
		zap.Int("slots", len(level.Slots)),
		zap.Int("updatables", g.Scheduler.UpdatableCount()),
	)
	return g, nil
}

func (g *Game) buildPlayer(cfg *config.Config, level *data.Level, input movement.IntentSource) *world.Player {
	pc := cfg.Player
	size := r2.Vec{X: pc.Width, Y: pc.Height}
	body := g.Space.NewBody(toVec(level.PlayerStart), physics.BodySpec{
		TriggerSize:  size,
		PhysicalSize: size,
		Tags:         []string{physics.TagPlayer},
	})
	body.SetEnabled(true)

	move := movement.New(body, input, movementConfig(pc))

	var opts []health.Option
	var moveOrDie *health.MoveOrDie
	switch pc.Rule {
	case "decay":
		opts = append(opts, health.WithDecay(pc.DecayRate))
	case "move_or_die":
		moveOrDie = &health.MoveOrDie{Regen: pc.MoveRegen, Drain: pc.IdleDrain}
		opts = append(opts, health.WithPolicy(moveOrDie))
	}
	if pc.TimedDamageRate > 0 {
		opts = append(opts, health.WithTimedDamage(pc.TimedDamageRate))
	}
	hp := health.New(pc.MaxHealth, opts...)

	p := world.NewPlayer(move, hp, g.Registry, g.Bus, g.log.Named("player"))
	if moveOrDie != nil {
		p.Watch(move.AddObserver(moveOrDie))
	}
	return p
}

// Advance runs one frame.
func (g *Game) Advance(dt time.Duration) {
	g.Scheduler.Advance(dt)
}

// AddUpdatable appends u after the built-in systems.
func (g *Game) AddUpdatable(u coresys.Updatable) {
	g.Scheduler.RegisterUpdatable(u)
}

// Watch ties sub's lifetime to the game's.
func (g *Game) Watch(sub *event.Subscription) {
	g.scope.Add(sub)
}

func (g *Game) Outcome() Outcome {
	switch {
	case !g.Player.Alive():
		return Lost
	case g.Win != nil && g.Win.Triggered():
		return Won
	default:
		return Running
	}
}

// Close detaches the player, drops subscriptions and releases every
// service registration. Safe to call twice.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.Player.Detach()
	g.scope.Close()
	for i := len(g.handles) - 1; i >= 0; i-- {
		g.handles[i].Release()
	}
	g.handles = nil
}
