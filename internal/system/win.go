package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/ashgrove/dashcore/internal/core/event"
	"github.com/ashgrove/dashcore/internal/core/registry"
	"github.com/ashgrove/dashcore/internal/physics"
	"github.com/ashgrove/dashcore/internal/world"
)

// WinTrigger fires the level-won signal the first time the player enters
// the goal area. Later entries are ignored.
type WinTrigger struct {
	goal physics.Rect
	reg  *registry.Registry
	bus  *event.Bus
	log  *zap.Logger

	triggered bool
}

func NewWinTrigger(goal physics.Rect, reg *registry.Registry, bus *event.Bus, log *zap.Logger) *WinTrigger {
	if log == nil {
		log = zap.NewNop()
	}
	return &WinTrigger{goal: goal, reg: reg, bus: bus, log: log}
}

func (w *WinTrigger) Triggered() bool { return w.triggered }

func (w *WinTrigger) Tick(_ time.Duration) {
	if w.triggered {
		return
	}
	p, ok := registry.Lookup[*world.Player](w.reg)
	if !ok || p == nil || !p.Alive() {
		return
	}
	if !p.Body().Bounds().Overlaps(w.goal) {
		return
	}
	w.triggered = true
	w.log.Info("level won", zap.String("pos", world.FormatVec(p.Position())))
	event.Emit(w.bus, event.LevelWon{})
	if ui, ok := registry.Lookup[world.UI](w.reg); ok {
		ui.ShowVictory()
	}
}
