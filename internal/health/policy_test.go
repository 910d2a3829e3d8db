package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 100 * time.Millisecond

func TestDecayDrainsUntilDeath(t *testing.T) {
	deaths := 0
	h := New(10, WithDecay(5), OnDeath(func() { deaths++ }))

	for i := 0; i < 10; i++ {
		h.Tick(tick)
	}
	assert.InDelta(t, 5.0, h.Current(), 1e-9)

	for i := 0; i < 30; i++ {
		h.Tick(tick)
	}
	assert.True(t, h.Dead())
	assert.Equal(t, 1, deaths)
}

func TestMoveOrDie(t *testing.T) {
	rule := &MoveOrDie{Regen: 5, Drain: 10}
	h := New(100, WithPolicy(rule))

	h.Tick(time.Second)
	assert.InDelta(t, 90.0, h.Current(), 1e-9, "stationary drains")

	rule.OnMovementStateChanged(true)
	require.True(t, rule.Moving())
	h.Tick(time.Second)
	assert.InDelta(t, 95.0, h.Current(), 1e-9, "moving heals")

	h.Tick(2 * time.Second)
	assert.InDelta(t, 100.0, h.Current(), 1e-9, "regen clamps at max")

	rule.OnMovementStateChanged(false)
	for i := 0; i < 20; i++ {
		h.Tick(time.Second)
	}
	assert.True(t, h.Dead())
}

func TestTimedDamageExpires(t *testing.T) {
	h := New(100, WithTimedDamage(10))
	h.Tick(time.Second)
	assert.Equal(t, 100.0, h.Current(), "idle until armed")

	require.True(t, h.StartTimedDamage(2*time.Second))
	for i := 0; i < 30; i++ {
		h.Tick(tick)
	}
	assert.InDelta(t, 80.0, h.Current(), 1e-6)
}

func TestTimedDamageExtendsInsteadOfStacking(t *testing.T) {
	td := &TimedDamage{Rate: 10}
	h := New(100, WithPolicy(td))

	h.StartTimedDamage(3 * time.Second)
	h.Tick(time.Second)
	h.StartTimedDamage(1 * time.Second) // shorter than remaining: no change
	assert.InDelta(t, 2.0, td.Remaining().Seconds(), 1e-6)

	h.StartTimedDamage(4 * time.Second)
	assert.InDelta(t, 4.0, td.Remaining().Seconds(), 1e-6)

	for i := 0; i < 10; i++ {
		h.Tick(time.Second)
	}
	assert.False(t, td.Active())
	assert.InDelta(t, 50.0, h.Current(), 1e-6, "1s + 4s at 10/s")
}

func TestTimedDamageUnavailableWithoutPolicy(t *testing.T) {
	h := New(10)
	assert.False(t, h.StartTimedDamage(time.Second))
}

func TestResetClearsTimedWindow(t *testing.T) {
	td := &TimedDamage{Rate: 100}
	h := New(10, WithPolicy(td))
	h.StartTimedDamage(time.Second)
	h.Tick(time.Second)
	require.True(t, h.Dead())

	h.Reset()
	assert.False(t, td.Active())
	h.Tick(time.Second)
	assert.Equal(t, 10.0, h.Current())
}
