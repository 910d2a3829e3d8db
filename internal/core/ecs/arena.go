package ecs

// Arena is index-stable record storage keyed by generational EntityID.
// Records are stored by pointer and mutated in place; a removed record's id
// stops resolving immediately, even while an Each pass is in progress.
// Accessed only from the simulation goroutine.
type Arena[T any] struct {
	ids          idAllocator
	slots        []*T
	destroyQueue []EntityID
}

func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots:        make([]*T, 0, capacity),
		destroyQueue: make([]EntityID, 0, capacity),
	}
}

// Insert stores v and returns its id.
func (a *Arena[T]) Insert(v *T) EntityID {
	id := a.ids.create()
	idx := int(id.Index())
	if idx >= len(a.slots) {
		a.slots = append(a.slots, nil)
	}
	a.slots[idx] = v
	return id
}

func (a *Arena[T]) Get(id EntityID) (*T, bool) {
	if !a.ids.alive(id) {
		return nil, false
	}
	return a.slots[id.Index()], true
}

func (a *Arena[T]) Has(id EntityID) bool {
	return a.ids.alive(id)
}

// Remove drops the record immediately. Removing a stale id is a no-op.
func (a *Arena[T]) Remove(id EntityID) bool {
	if !a.ids.destroy(id) {
		return false
	}
	a.slots[id.Index()] = nil
	return true
}

// Len returns the number of live records.
func (a *Arena[T]) Len() int {
	return len(a.slots) - len(a.ids.freeList)
}

// Each visits live records in index order. Records removed during the pass
// are skipped if not yet visited. A record inserted during the pass is only
// visited if it reuses a free slot ahead of the cursor.
func (a *Arena[T]) Each(fn func(EntityID, *T)) {
	n := len(a.slots)
	for i := 0; i < n; i++ {
		v := a.slots[i]
		if v == nil {
			continue
		}
		fn(NewEntityID(uint32(i), a.ids.generations[i]), v)
	}
}

// MarkForRemoval queues an id for FlushRemovals. Queuing the same id twice
// is harmless; the second removal is a stale no-op.
func (a *Arena[T]) MarkForRemoval(id EntityID) {
	a.destroyQueue = append(a.destroyQueue, id)
}

// FlushRemovals removes every queued record, calling fn with each record
// actually removed (in queue order) before it leaves the arena.
func (a *Arena[T]) FlushRemovals(fn func(EntityID, *T)) {
	for _, id := range a.destroyQueue {
		v, ok := a.Get(id)
		if !ok {
			continue
		}
		if fn != nil {
			fn(id, v)
		}
		a.Remove(id)
	}
	a.destroyQueue = a.destroyQueue[:0]
}
