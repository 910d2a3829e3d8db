// Package registry is the service directory shared by simulation components.
// It maps a capability type to the single live instance providing it. One
// Registry is built by the composition root and passed to whoever needs it.
package registry

import "reflect"

type entry struct {
	svc   any
	token uint64
}

// Registry is a single-threaded type -> instance map.
type Registry struct {
	services  map[reflect.Type]entry
	nextToken uint64
}

func New() *Registry {
	return &Registry{services: make(map[reflect.Type]entry, 16)}
}

// Handle releases one registration. Release is idempotent and never removes
// a later registration of the same type.
type Handle struct {
	r     *Registry
	t     reflect.Type
	token uint64
}

func (h *Handle) Release() {
	if h == nil || h.r == nil {
		return
	}
	if e, ok := h.r.services[h.t]; ok && e.token == h.token {
		delete(h.r.services, h.t)
	}
	h.r = nil
}

// Register makes svc the provider of T, replacing any previous provider.
func Register[T any](r *Registry, svc T) *Handle {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.nextToken++
	r.services[t] = entry{svc: svc, token: r.nextToken}
	return &Handle{r: r, t: t, token: r.nextToken}
}

// Unregister removes the provider of T. Absent providers are ignored.
func Unregister[T any](r *Registry) {
	delete(r.services, reflect.TypeOf((*T)(nil)).Elem())
}

// Lookup returns the provider of T. Callers treat ok == false as "skip the
// dependent behaviour", never as fatal.
func Lookup[T any](r *Registry) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	e, ok := r.services[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return zero, false
	}
	svc, ok := e.svc.(T)
	return svc, ok
}

// Len returns the number of registered services.
func (r *Registry) Len() int {
	return len(r.services)
}
