package system

import (
	"time"

	"go.uber.org/zap"
)

// Scheduler is the single per-frame driver. It initializes every registered
// Initializable on the first Advance, then ticks every registered Updatable
// in registration order. All bookkeeping is silent: duplicate registration
// and removal of unknown entries are no-ops.
type Scheduler struct {
	initializables []Initializable
	updatables     []Updatable
	registered     map[Updatable]struct{}
	snapshot       []Updatable
	initialized    bool
	frame          uint64
	log            *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		initializables: make([]Initializable, 0, 16),
		updatables:     make([]Updatable, 0, 16),
		registered:     make(map[Updatable]struct{}, 16),
		log:            log,
	}
}

// RegisterInitializable queues x for one-time setup. After the first Advance
// x is initialized immediately instead.
func (s *Scheduler) RegisterInitializable(x Initializable) {
	for _, existing := range s.initializables {
		if existing == x {
			return
		}
	}
	s.initializables = append(s.initializables, x)
	if s.initialized {
		x.Initialize()
	}
}

func (s *Scheduler) UnregisterInitializable(x Initializable) {
	for i, existing := range s.initializables {
		if existing == x {
			s.initializables = append(s.initializables[:i], s.initializables[i+1:]...)
			return
		}
	}
}

func (s *Scheduler) RegisterUpdatable(x Updatable) {
	if _, ok := s.registered[x]; ok {
		return
	}
	s.registered[x] = struct{}{}
	s.updatables = append(s.updatables, x)
}

// UnregisterUpdatable removes x. During a pass the removal takes effect
// immediately for entries not yet ticked.
func (s *Scheduler) UnregisterUpdatable(x Updatable) {
	if _, ok := s.registered[x]; !ok {
		return
	}
	delete(s.registered, x)
	for i, existing := range s.updatables {
		if existing == x {
			s.updatables = append(s.updatables[:i], s.updatables[i+1:]...)
			return
		}
	}
}

// Advance runs one frame. The host calls it exactly once per frame.
func (s *Scheduler) Advance(dt time.Duration) {
	if !s.initialized {
		s.initialized = true
		pending := append([]Initializable(nil), s.initializables...)
		s.log.Debug("scheduler initializing", zap.Int("initializables", len(pending)))
		for _, x := range pending {
			x.Initialize()
		}
	}

	// Iterate a stable snapshot so registration changes mid-pass cannot
	// shift indices under the loop.
	s.snapshot = append(s.snapshot[:0], s.updatables...)
	for i, u := range s.snapshot {
		if _, ok := s.registered[u]; ok {
			u.Tick(dt)
		}
		s.snapshot[i] = nil
	}
	s.frame++
}

// Frame returns the number of completed Advance calls.
func (s *Scheduler) Frame() uint64 { return s.frame }

func (s *Scheduler) Initialized() bool { return s.initialized }

func (s *Scheduler) UpdatableCount() int { return len(s.updatables) }
