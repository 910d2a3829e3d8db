package health

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthStaysInBoundsForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		h := New(100)
		for step := 0; step < 200; step++ {
			amount := rng.Float64()*60 - 10
			if rng.Intn(2) == 0 {
				h.Damage(amount)
			} else {
				h.Heal(amount)
			}
			require.GreaterOrEqual(t, h.Current(), 0.0)
			require.LessOrEqual(t, h.Current(), h.Max())
		}
	}
}

func TestDeathFiresExactlyOncePerLife(t *testing.T) {
	deaths := 0
	h := New(30, OnDeath(func() { deaths++ }))

	h.Damage(20)
	assert.Equal(t, 0, deaths)
	h.Damage(50)
	h.Damage(50)
	h.Kill()
	assert.Equal(t, 1, deaths)
	assert.True(t, h.Dead())
	assert.Equal(t, 0.0, h.Current())

	h.Reset()
	assert.True(t, h.Alive())
	assert.Equal(t, 30.0, h.Current())
	h.Kill()
	assert.Equal(t, 2, deaths, "a new life can die again")
}

func TestReentrantDamageFromListenerDoesNotDoubleDeath(t *testing.T) {
	deaths := 0
	var h *Health
	h = New(10,
		OnChanged(func(float64, float64) { h.Damage(5) }),
		OnDeath(func() { deaths++ }),
	)
	h.Damage(10)
	assert.Equal(t, 1, deaths)
}

func TestChangedFiresOnlyOnRealChange(t *testing.T) {
	type change struct{ cur, max float64 }
	var got []change
	h := New(50)
	sub := h.SubscribeChanged(func(cur, max float64) { got = append(got, change{cur, max}) })

	h.Heal(10) // already full
	h.Damage(0)
	h.Damage(-5)
	h.Damage(15)
	h.Heal(5)
	h.Heal(100)
	assert.Equal(t, []change{{35, 50}, {40, 50}, {50, 50}}, got)

	sub.Cancel()
	h.Damage(1)
	assert.Len(t, got, 3)
}

func TestNegativeDamageNeverHeals(t *testing.T) {
	h := New(10)
	h.Damage(4)
	h.Damage(-100)
	assert.Equal(t, 6.0, h.Current())
	h.Heal(-3)
	assert.Equal(t, 6.0, h.Current())
}

func TestHealingDeadHasNoEffect(t *testing.T) {
	h := New(10)
	h.Kill()
	h.Heal(5)
	assert.Equal(t, 0.0, h.Current())
	assert.True(t, h.Dead())
}

func TestPercentAndZeroMax(t *testing.T) {
	h := New(80)
	h.Damage(20)
	assert.InDelta(t, 0.75, h.Percent(), 1e-9)

	empty := New(0)
	assert.True(t, empty.Dead())
	assert.Equal(t, 0.0, empty.Percent())
}
