package system

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/core/event"
	"github.com/ashgrove/dashcore/internal/core/registry"
	coresys "github.com/ashgrove/dashcore/internal/core/system"
	"github.com/ashgrove/dashcore/internal/health"
	"github.com/ashgrove/dashcore/internal/movement"
	"github.com/ashgrove/dashcore/internal/physics"
	"github.com/ashgrove/dashcore/internal/world"
)

const frame = time.Second / 60

type fakeUI struct {
	hits      []float64
	colors    []world.ColorHint
	health    [][2]float64
	victories int
	defeats   int
}

func (u *fakeUI) ShowDamageText(_ r2.Vec, amount float64, color world.ColorHint) {
	u.hits = append(u.hits, amount)
	u.colors = append(u.colors, color)
}
func (u *fakeUI) UpdateHealth(current, max float64) { u.health = append(u.health, [2]float64{current, max}) }
func (u *fakeUI) ShowVictory()                      { u.victories++ }
func (u *fakeUI) ShowDefeat()                       { u.defeats++ }

type intentBox struct{ in movement.Intent }

func (b *intentBox) Intent() movement.Intent { return b.in }

type rig struct {
	space  *physics.Space
	reg    *registry.Registry
	bus    *event.Bus
	sched  *coresys.Scheduler
	ui     *fakeUI
	input  *intentBox
	player *world.Player
	level  *LevelController
}

func testLevelConfig() LevelConfig {
	return LevelConfig{
		Defaults:     world.HostileStats{MaxHealth: 100, AttackDamage: 10},
		TriggerSize:  r2.Vec{X: 1, Y: 1},
		PhysicalSize: r2.Vec{X: 1, Y: 1},
		RespawnDelay: 3 * time.Second,
		PoolCapacity: 2,
		PatrolProbe:  0.05,
		Combat:       DefaultCombatRules(),
	}
}

// newRig builds a 60×20 level with ground along the bottom and a wall at
// x=50, a player at playerPos with 1000 hp, and a level controller over
// slots. Nothing is ticked yet.
func newRig(t *testing.T, playerPos r2.Vec, slots []*world.Slot, cfg LevelConfig) *rig {
	t.Helper()
	log := zaptest.NewLogger(t)

	space := physics.NewSpace(60, 20, 2)
	space.AddStatic(physics.Rect{X: 0, Y: 0, W: 60, H: 1}, physics.TagGround)
	space.AddStatic(physics.Rect{X: 50, Y: 1, W: 1, H: 5}, physics.TagWall)

	reg := registry.New()
	bus := event.NewBus()
	ui := &fakeUI{}
	registry.Register[world.UI](reg, ui)

	body := space.NewBody(playerPos, physics.BodySpec{
		TriggerSize:  r2.Vec{X: 1, Y: 1},
		PhysicalSize: r2.Vec{X: 1, Y: 1},
		Tags:         []string{physics.TagPlayer},
	})
	body.SetEnabled(true)
	input := &intentBox{}
	move := movement.New(body, input, movement.DefaultConfig())
	player := world.NewPlayer(move, health.New(1000), reg, bus, log)
	registry.Register(reg, player)

	level := NewLevelController(slots, space, reg, bus, nil, cfg, log)

	sched := coresys.NewScheduler(log)
	sched.RegisterUpdatable(NewDispatchSystem(bus))
	sched.RegisterInitializable(level)
	player.Attach(sched)
	sched.RegisterUpdatable(level)

	return &rig{
		space:  space,
		reg:    reg,
		bus:    bus,
		sched:  sched,
		ui:     ui,
		input:  input,
		player: player,
		level:  level,
	}
}

func (r *rig) advance(n int) {
	for i := 0; i < n; i++ {
		r.sched.Advance(frame)
	}
}

func (r *rig) deliver() {
	r.bus.SwapBuffers()
	r.bus.DispatchAll()
}

func slotAt(x float64) *world.Slot {
	return &world.Slot{Anchor: r2.Vec{X: x, Y: 1.5}}
}
