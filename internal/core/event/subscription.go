package event

import "github.com/google/uuid"

// Subscription is a handle to one registered listener. Cancel is idempotent
// and safe to call from inside the listener itself.
type Subscription struct {
	id     string
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{id: uuid.NewString(), cancel: cancel}
}

func (s *Subscription) ID() string { return s.id }

func (s *Subscription) Active() bool { return s != nil && s.cancel != nil }

func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	cancel := s.cancel
	s.cancel = nil
	cancel()
}

// Scope owns subscriptions for one entity lifetime. Close cancels all of
// them; an owner calls it on every teardown path.
type Scope struct {
	subs   []*Subscription
	closed bool
}

// Add takes ownership of sub. Adding to a closed scope cancels sub at once.
func (sc *Scope) Add(sub *Subscription) *Subscription {
	if sc.closed {
		sub.Cancel()
		return sub
	}
	sc.subs = append(sc.subs, sub)
	return sub
}

// AddFunc registers an arbitrary release step (e.g. a registry handle).
func (sc *Scope) AddFunc(release func()) {
	sc.Add(&Subscription{id: uuid.NewString(), cancel: release})
}

func (sc *Scope) Close() {
	sc.closed = true
	for i := len(sc.subs) - 1; i >= 0; i-- {
		sc.subs[i].Cancel()
	}
	sc.subs = nil
}

func (sc *Scope) Closed() bool { return sc.closed }

// Listeners is an ordered list of synchronous callbacks.
type Listeners[F any] struct {
	entries []listener[F]
}

type listener[F any] struct {
	sub *Subscription
	fn  F
}

func (l *Listeners[F]) Subscribe(fn F) *Subscription {
	var sub *Subscription
	sub = newSubscription(func() { l.remove(sub) })
	l.entries = append(l.entries, listener[F]{sub: sub, fn: fn})
	return sub
}

// Each calls visit for every listener registered when the call began and
// still subscribed when its turn comes.
func (l *Listeners[F]) Each(visit func(F)) {
	if len(l.entries) == 0 {
		return
	}
	snapshot := append([]listener[F](nil), l.entries...)
	for _, e := range snapshot {
		if e.sub.Active() {
			visit(e.fn)
		}
	}
}

func (l *Listeners[F]) Len() int { return len(l.entries) }

func (l *Listeners[F]) remove(sub *Subscription) {
	for i, e := range l.entries {
		if e.sub == sub {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}
