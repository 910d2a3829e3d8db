package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversNextFrameInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e HostileKilled) { got = append(got, "killed:"+e.Cause.String()) })
	Subscribe(b, func(LevelWon) { got = append(got, "won") })

	Emit(b, HostileKilled{Slot: 1, Cause: CauseJumpKill})
	Emit(b, LevelWon{})
	Emit(b, HostileKilled{Slot: 2})
	assert.Empty(t, got, "nothing delivered before the swap")
	assert.Equal(t, 3, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"killed:jump_kill", "won", "killed:health"}, got)
	assert.Equal(t, 0, b.Pending())
}

func TestBusEmitFromHandlerLandsNextFrame(t *testing.T) {
	b := NewBus()
	won := 0
	Subscribe(b, func(PlayerDied) { Emit(b, LevelWon{}) })
	Subscribe(b, func(LevelWon) { won++ })

	Emit(b, PlayerDied{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 0, won)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 1, won)
}

func TestBusCancelledSubscriptionStopsDelivery(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := Subscribe(b, func(LevelWon) { calls++ })
	require.True(t, sub.Active())
	require.NotEmpty(t, sub.ID())

	sub.Cancel()
	sub.Cancel()
	Emit(b, LevelWon{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 0, calls)
}

func TestEmitOnNilBusIsIgnored(t *testing.T) {
	var b *Bus
	assert.NotPanics(t, func() { Emit(b, LevelWon{}) })
}

func TestListenersCancelDuringEach(t *testing.T) {
	var l Listeners[func(int)]
	var seen []string
	var second *Subscription
	l.Subscribe(func(int) {
		seen = append(seen, "first")
		second.Cancel()
	})
	second = l.Subscribe(func(int) { seen = append(seen, "second") })
	l.Subscribe(func(int) { seen = append(seen, "third") })

	l.Each(func(fn func(int)) { fn(0) })
	assert.Equal(t, []string{"first", "third"}, seen)
	assert.Equal(t, 2, l.Len())
}

func TestScopeCloseCancelsEverything(t *testing.T) {
	var l Listeners[func()]
	var sc Scope
	released := 0
	sc.Add(l.Subscribe(func() {}))
	sc.Add(l.Subscribe(func() {}))
	sc.AddFunc(func() { released++ })
	require.Equal(t, 2, l.Len())

	sc.Close()
	sc.Close()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 1, released)
	assert.True(t, sc.Closed())

	late := sc.Add(l.Subscribe(func() {}))
	assert.False(t, late.Active())
	assert.Equal(t, 0, l.Len())
}
