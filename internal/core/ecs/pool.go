package ecs

import "fmt"

// Activatable is implemented by anything a Pool recycles. SetActive(true) is
// called on acquire and SetActive(false) on release.
type Activatable interface {
	SetActive(active bool)
}

// Factory constructs a new inactive pooled object.
type Factory[T any] func() (T, error)

type poolState uint8

const (
	stateAvailable poolState = iota + 1
	stateActive
)

// Pool recycles expensive-to-construct objects of one kind. Every object the
// pool created is in exactly one of {available, active}.
//
// With MaxSize == 0 the pool grows without bound. With MaxSize > 0, once
// MaxSize objects are active, Acquire recycles the oldest active object
// instead of constructing another one.
type Pool[T interface {
	comparable
	Activatable
}] struct {
	factory   Factory[T]
	maxSize   int
	available []T
	active    []T
	state     map[T]poolState
}

// PoolOption configures a Pool.
type PoolOption func(*poolOptions)

type poolOptions struct {
	maxSize int
}

// WithMaxSize enables steal-oldest recycling once n objects are active.
func WithMaxSize(n int) PoolOption {
	return func(o *poolOptions) { o.maxSize = n }
}

func NewPool[T interface {
	comparable
	Activatable
}](factory Factory[T], opts ...PoolOption) *Pool[T] {
	var o poolOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[T]{
		factory: factory,
		maxSize: o.maxSize,
		state:   make(map[T]poolState, 16),
	}
}

// Initialize pre-populates capacity inactive objects.
func (p *Pool[T]) Initialize(capacity int) error {
	for i := 0; i < capacity; i++ {
		obj, err := p.construct()
		if err != nil {
			return fmt.Errorf("prewarm pool (%d/%d): %w", i, capacity, err)
		}
		obj.SetActive(false)
		p.available = append(p.available, obj)
		p.state[obj] = stateAvailable
	}
	return nil
}

// Acquire returns an active object: the oldest available one, a freshly
// constructed one, or with MaxSize set and reached, the oldest active one.
func (p *Pool[T]) Acquire() (T, error) {
	if len(p.available) > 0 {
		obj := p.available[0]
		var zero T
		p.available[0] = zero
		p.available = p.available[1:]
		p.activate(obj)
		return obj, nil
	}

	if p.maxSize > 0 && len(p.active) >= p.maxSize {
		obj := p.active[0]
		copy(p.active, p.active[1:])
		p.active = p.active[:len(p.active)-1]
		obj.SetActive(false)
		p.activate(obj)
		return obj, nil
	}

	obj, err := p.construct()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("acquire: %w", err)
	}
	p.activate(obj)
	return obj, nil
}

// Release deactivates obj and queues it for reuse. Releasing an object that
// is not currently active (already released, or foreign) is a no-op.
func (p *Pool[T]) Release(obj T) bool {
	if p.state[obj] != stateActive {
		return false
	}
	for i, a := range p.active {
		if a == obj {
			copy(p.active[i:], p.active[i+1:])
			var zero T
			p.active[len(p.active)-1] = zero
			p.active = p.active[:len(p.active)-1]
			break
		}
	}
	obj.SetActive(false)
	p.available = append(p.available, obj)
	p.state[obj] = stateAvailable
	return true
}

// IsActive reports whether obj is currently handed out by this pool.
func (p *Pool[T]) IsActive(obj T) bool {
	return p.state[obj] == stateActive
}

func (p *Pool[T]) ActiveCount() int    { return len(p.active) }
func (p *Pool[T]) AvailableCount() int { return len(p.available) }
func (p *Pool[T]) MaxSize() int        { return p.maxSize }

// EachActive visits active objects from oldest to newest.
func (p *Pool[T]) EachActive(fn func(T)) {
	for _, obj := range p.active {
		fn(obj)
	}
}

func (p *Pool[T]) construct() (T, error) {
	if p.factory == nil {
		var zero T
		return zero, fmt.Errorf("pool has no factory")
	}
	return p.factory()
}

func (p *Pool[T]) activate(obj T) {
	obj.SetActive(true)
	p.active = append(p.active, obj)
	p.state[obj] = stateActive
}
