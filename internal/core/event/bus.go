package event

import (
	"reflect"
)

// Bus is a double-buffered event bus. Events emitted in frame N are
// delivered in frame N+1, in emission order, when DispatchSystem calls
// SwapBuffers then DispatchAll. Single simulation goroutine only.
type Bus struct {
	front    []queued
	back     []queued
	handlers map[reflect.Type]*Listeners[func(any)]
}

type queued struct {
	t  reflect.Type
	ev any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]queued, 0, 32),
		back:     make([]queued, 0, 32),
		handlers: make(map[reflect.Type]*Listeners[func(any)]),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer (delivered next frame).
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	b.back = append(b.back, queued{t: typeKey[T](), ev: event})
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) *Subscription {
	t := typeKey[T]()
	l, ok := b.handlers[t]
	if !ok {
		l = &Listeners[func(any)]{}
		b.handlers[t] = l
	}
	return l.Subscribe(func(ev any) { fn(ev.(T)) })
}

// SwapBuffers moves the back buffer to the front and clears the new back
// buffer. Called once at frame start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers all front-buffer events to their subscribed handlers.
// Handlers may Emit; those events land in the back buffer.
func (b *Bus) DispatchAll() {
	for i, q := range b.front {
		if l, ok := b.handlers[q.t]; ok {
			l.Each(func(h func(any)) { h(q.ev) })
		}
		b.front[i] = queued{}
	}
	b.front = b.front[:0]
}

// Pending returns the number of events waiting for the next dispatch.
func (b *Bus) Pending() int { return len(b.back) }
