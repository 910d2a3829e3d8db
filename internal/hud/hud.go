// Package hud is the headless presentation layer: floating damage numbers,
// the health readout and the outcome banners, kept as state and logged.
package hud

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/core/ecs"
	"github.com/ashgrove/dashcore/internal/world"
)

type Config struct {
	PoolSize int           // damage texts built up front
	MaxTexts int           // on-screen cap, 0 = unbounded
	Lifetime time.Duration // how long a text stays up
}

// DamageText is one floating number.
type DamageText struct {
	Position r2.Vec
	Amount   float64
	Color    world.ColorHint
	age      float64
	active   bool
}

// SetActive implements ecs.Activatable.
func (d *DamageText) SetActive(active bool) {
	d.active = active
	d.age = 0
}

// HUD implements world.UI.
type HUD struct {
	texts    *ecs.Pool[*DamageText]
	lifetime float64
	log      *zap.Logger

	healthText string
	victory    bool
	defeat     bool
	expired    []*DamageText
}

func New(cfg Config, log *zap.Logger) (*HUD, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var opts []ecs.PoolOption
	if cfg.MaxTexts > 0 {
		opts = append(opts, ecs.WithMaxSize(cfg.MaxTexts))
	}
	pool := ecs.NewPool(func() (*DamageText, error) { return &DamageText{}, nil }, opts...)
	if err := pool.Initialize(cfg.PoolSize); err != nil {
		return nil, fmt.Errorf("damage text pool: %w", err)
	}
	return &HUD{texts: pool, lifetime: cfg.Lifetime.Seconds(), log: log}, nil
}

func (h *HUD) ShowDamageText(pos r2.Vec, amount float64, color world.ColorHint) {
	t, err := h.texts.Acquire()
	if err != nil {
		h.log.Warn("damage text unavailable", zap.Error(err))
		return
	}
	t.Position = pos
	t.Amount = amount
	t.Color = color
	h.log.Debug("damage text",
		zap.String("pos", world.FormatVec(pos)),
		zap.Float64("amount", amount),
		zap.Stringer("color", color),
	)
}

func (h *HUD) UpdateHealth(current, max float64) {
	h.healthText = fmt.Sprintf("HP: %.0f/%.0f", current, max)
}

func (h *HUD) ShowVictory() {
	if h.victory {
		return
	}
	h.victory = true
	h.log.Info("victory")
}

func (h *HUD) ShowDefeat() {
	if h.defeat {
		return
	}
	h.defeat = true
	h.log.Info("defeat")
}

// Tick ages the floating texts and returns expired ones to the pool.
func (h *HUD) Tick(dt time.Duration) {
	sec := dt.Seconds()
	h.expired = h.expired[:0]
	h.texts.EachActive(func(t *DamageText) {
		t.age += sec
		if t.age >= h.lifetime {
			h.expired = append(h.expired, t)
		}
	})
	for _, t := range h.expired {
		h.texts.Release(t)
	}
}

// Texts returns a copy of the visible damage texts, oldest first.
func (h *HUD) Texts() []DamageText {
	out := make([]DamageText, 0, h.texts.ActiveCount())
	h.texts.EachActive(func(t *DamageText) { out = append(out, *t) })
	return out
}

func (h *HUD) HealthText() string { return h.healthText }
func (h *HUD) Victory() bool      { return h.victory }
func (h *HUD) Defeat() bool       { return h.defeat }

// PoolStats returns the active and idle damage text counts.
func (h *HUD) PoolStats() (active, available int) {
	return h.texts.ActiveCount(), h.texts.AvailableCount()
}
