package system

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/core/ecs"
	"github.com/ashgrove/dashcore/internal/core/event"
	"github.com/ashgrove/dashcore/internal/core/registry"
	"github.com/ashgrove/dashcore/internal/health"
	"github.com/ashgrove/dashcore/internal/physics"
	"github.com/ashgrove/dashcore/internal/world"
)

// LevelConfig tunes the LevelController.
type LevelConfig struct {
	Defaults     world.HostileStats
	TriggerSize  r2.Vec
	PhysicalSize r2.Vec
	Decay        float64       // hostile health drain per second, 0 = none
	RespawnDelay time.Duration // used by slots without their own delay
	PoolCapacity int
	// PatrolProbe is how far past its leading edge a hostile looks for a
	// wall before stepping.
	PatrolProbe float64
	// RandomHeading starts each spawned hostile facing left or right at
	// random, drawn from a generator seeded with Seed. Otherwise hostiles
	// start facing right.
	RandomHeading bool
	Seed          uint64
	Combat        CombatRules
}

// LevelController owns the spawn slots and the hostiles they produce. Each
// tick: respawn timers, hostile health policies, patrol, combat against the
// player, then the deferred despawn flush.
type LevelController struct {
	cfg      LevelConfig
	space    *physics.Space
	reg      *registry.Registry
	bus      *event.Bus
	formulas Formulas
	log      *zap.Logger

	slots    []*world.Slot
	pool     *ecs.Pool[*world.Entity]
	hostiles *ecs.Arena[world.Hostile]
	rng      *rand.Rand

	kills       int
	playerWarn  bool
	initialized bool
}

func NewLevelController(
	slots []*world.Slot,
	space *physics.Space,
	reg *registry.Registry,
	bus *event.Bus,
	formulas Formulas,
	cfg LevelConfig,
	log *zap.Logger,
) *LevelController {
	if log == nil {
		log = zap.NewNop()
	}
	if formulas == nil {
		formulas = BaseFormulas{}
	}
	for i, s := range slots {
		s.Index = i
	}
	c := &LevelController{
		cfg:      cfg,
		space:    space,
		reg:      reg,
		bus:      bus,
		formulas: formulas,
		log:      log,
		slots:    slots,
		hostiles: ecs.NewArena[world.Hostile](len(slots)),
	}
	spec := physics.BodySpec{
		TriggerSize:  cfg.TriggerSize,
		PhysicalSize: cfg.PhysicalSize,
		Tags:         []string{physics.TagHostile},
	}
	if cfg.RandomHeading {
		c.rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}
	c.pool = ecs.NewPool(func() (*world.Entity, error) {
		return world.NewEntity(space.NewBody(r2.Vec{}, spec)), nil
	})
	return c
}

// Initialize prewarms the pool and fills every slot. Implements
// system.Initializable.
func (c *LevelController) Initialize() {
	if c.initialized {
		return
	}
	c.initialized = true
	if len(c.slots) == 0 {
		c.log.Warn("level has no spawn slots, hostiles disabled")
		return
	}
	capacity := c.cfg.PoolCapacity
	if capacity <= 0 {
		capacity = len(c.slots)
	}
	if err := c.pool.Initialize(capacity); err != nil {
		c.log.Error("hostile pool prewarm failed", zap.Error(err))
	}
	for _, s := range c.slots {
		c.spawn(s, s.Anchor)
	}
	c.log.Info("level initialised",
		zap.Int("slots", len(c.slots)),
		zap.Int("hostiles", c.hostiles.Len()),
	)
}

func (c *LevelController) Tick(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	for _, s := range c.slots {
		if s.Advance(sec) {
			c.spawn(s, s.Anchor)
		}
	}

	st := newStrike(c.player())
	c.hostiles.Each(func(id ecs.EntityID, h *world.Hostile) {
		if h.Dying {
			return
		}
		h.Health.Tick(dt)
		if h.Dying {
			return
		}
		c.patrol(h, sec)
		c.resolveCombat(id, h, st, sec)
	})
	st.finish()

	c.hostiles.FlushRemovals(c.despawn)
}

// spawn fills s with a hostile at pos. Returns false when no entity could
// be had.
func (c *LevelController) spawn(s *world.Slot, pos r2.Vec) bool {
	if s.State() == world.SlotOccupied {
		return false
	}
	ent, err := c.pool.Acquire()
	if err != nil {
		c.log.Error("hostile acquire failed", zap.Int("slot", s.Index), zap.Error(err))
		s.Vacate(c.cfg.RespawnDelay)
		return false
	}
	ent.Body().SetPosition(pos)

	stats := s.Stats.Merge(c.cfg.Defaults)
	h := &world.Hostile{
		Entity:       ent,
		Slot:         s.Index,
		Direction:    c.heading(),
		Speed:        stats.Speed,
		MaxFlipTimer: s.FlipPeriod.Seconds(),
		AttackDamage: stats.AttackDamage,
	}
	var opts []health.Option
	if c.cfg.Decay > 0 {
		opts = append(opts, health.WithDecay(c.cfg.Decay))
	}
	h.Health = health.New(stats.MaxHealth, opts...)
	h.ID = c.hostiles.Insert(h)
	id := h.ID
	h.Health.SubscribeDeath(func() { c.kill(id, event.CauseHealth) })
	s.Occupy(h.ID)

	event.Emit(c.bus, event.HostileSpawned{Slot: s.Index, Position: pos})
	c.log.Debug("hostile spawned", zap.Int("slot", s.Index), zap.String("pos", world.FormatVec(pos)))
	return true
}

// kill flags a hostile for removal at the end of the tick.
func (c *LevelController) kill(id ecs.EntityID, cause event.DeathCause) {
	h, ok := c.hostiles.Get(id)
	if !ok || h.Dying {
		return
	}
	h.Kill(cause)
	c.hostiles.MarkForRemoval(id)
}

func (c *LevelController) despawn(id ecs.EntityID, h *world.Hostile) {
	c.pool.Release(h.Entity)
	c.kills++
	if h.Slot >= 0 && h.Slot < len(c.slots) {
		s := c.slots[h.Slot]
		if s.Hostile() == id {
			s.Vacate(c.cfg.RespawnDelay)
		}
	}
	event.Emit(c.bus, event.HostileKilled{Slot: h.Slot, Cause: h.Cause})
	c.log.Debug("hostile despawned",
		zap.Int("slot", h.Slot),
		zap.Stringer("cause", h.Cause),
	)
}

// patrol walks a hostile along its heading, turning on its flip timer or
// when a wall is ahead.
func (c *LevelController) patrol(h *world.Hostile, sec float64) {
	if h.MaxFlipTimer > 0 {
		h.FlipTimer += sec
		if h.FlipTimer >= h.MaxFlipTimer {
			h.Direction = -h.Direction
			h.FlipTimer = 0
		}
	}
	if h.Speed <= 0 {
		return
	}
	body := h.Entity.Body()
	step := h.Direction * h.Speed * sec
	ahead := body.Bounds().Translate(r2.Vec{X: step + math.Copysign(c.cfg.PatrolProbe, step)})
	if c.space.Probe(ahead, physics.TagWall) {
		h.Direction = -h.Direction
		h.FlipTimer = 0
		return
	}
	body.Translate(r2.Vec{X: step})
}

func (c *LevelController) heading() float64 {
	if c.rng != nil && c.rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

func (c *LevelController) player() *world.Player {
	p, ok := registry.Lookup[*world.Player](c.reg)
	if !ok || p == nil {
		if !c.playerWarn {
			c.playerWarn = true
			c.log.Warn("no player registered, combat disabled")
		}
		return nil
	}
	return p
}

// SpawnNear fills the free slot whose anchor is closest to pos, spawning at
// pos itself. Returns false when every slot is occupied.
func (c *LevelController) SpawnNear(pos r2.Vec) bool {
	var best *world.Slot
	bestDist := math.Inf(1)
	for _, s := range c.slots {
		if s.State() == world.SlotOccupied {
			continue
		}
		if d := r2.Norm(r2.Sub(s.Anchor, pos)); d < bestDist {
			best, bestDist = s, d
		}
	}
	if best == nil {
		return false
	}
	return c.spawn(best, pos)
}

// DamageHostile deals amount to a live hostile. Lethal damage despawns it
// at the end of the current or next tick.
func (c *LevelController) DamageHostile(id ecs.EntityID, amount float64) bool {
	h, ok := c.hostiles.Get(id)
	if !ok || h.Dying {
		return false
	}
	h.Health.Damage(amount)
	return true
}

// HostileHealthPercent returns current/max health of a live hostile.
func (c *LevelController) HostileHealthPercent(id ecs.EntityID) (float64, bool) {
	h, ok := c.hostiles.Get(id)
	if !ok {
		return 0, false
	}
	return h.Health.Percent(), true
}

// Hostile returns the record for id while it is live.
func (c *LevelController) Hostile(id ecs.EntityID) (*world.Hostile, bool) {
	return c.hostiles.Get(id)
}

// EachHostile visits live hostiles in storage order.
func (c *LevelController) EachHostile(fn func(*world.Hostile)) {
	c.hostiles.Each(func(_ ecs.EntityID, h *world.Hostile) { fn(h) })
}

func (c *LevelController) Slots() []*world.Slot { return c.slots }

func (c *LevelController) ActiveHostiles() int { return c.hostiles.Len() }

func (c *LevelController) OccupiedSlots() int {
	n := 0
	for _, s := range c.slots {
		if s.State() == world.SlotOccupied {
			n++
		}
	}
	return n
}

func (c *LevelController) Kills() int { return c.kills }

// Pool exposes the hostile entity pool.
func (c *LevelController) Pool() *ecs.Pool[*world.Entity] { return c.pool }
