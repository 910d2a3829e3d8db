package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now float64 }

type greeter interface{ Greet() string }

type english struct{}

func (english) Greet() string { return "hello" }

func TestLookupByConcreteAndInterfaceType(t *testing.T) {
	r := New()
	c := &clock{now: 3}
	Register(r, c)
	Register[greeter](r, english{})

	got, ok := Lookup[*clock](r)
	require.True(t, ok)
	assert.Same(t, c, got)

	g, ok := Lookup[greeter](r)
	require.True(t, ok)
	assert.Equal(t, "hello", g.Greet())

	_, ok = Lookup[english](r)
	assert.False(t, ok, "registered under the interface only")
}

func TestMissingServiceIsNotFatal(t *testing.T) {
	r := New()
	got, ok := Lookup[*clock](r)
	assert.False(t, ok)
	assert.Nil(t, got)

	Unregister[*clock](r)

	var nilRegistry *Registry
	_, ok = Lookup[*clock](nilRegistry)
	assert.False(t, ok)
}

func TestHandleReleaseKeepsNewerRegistration(t *testing.T) {
	r := New()
	old := Register(r, &clock{now: 1})
	newer := &clock{now: 2}
	Register(r, newer)

	old.Release()
	got, ok := Lookup[*clock](r)
	require.True(t, ok)
	assert.Same(t, newer, got)

	old.Release()
	assert.Equal(t, 1, r.Len())
}

func TestHandleReleaseRemovesOwnRegistration(t *testing.T) {
	r := New()
	h := Register(r, &clock{})
	h.Release()
	h.Release()
	_, ok := Lookup[*clock](r)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}
