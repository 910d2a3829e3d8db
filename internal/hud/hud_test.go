package hud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ashgrove/dashcore/internal/world"
)

var _ world.UI = (*HUD)(nil)

func TestDamageTextsExpire(t *testing.T) {
	h, err := New(Config{PoolSize: 2, Lifetime: time.Second}, zaptest.NewLogger(t))
	require.NoError(t, err)

	h.ShowDamageText(r2.Vec{X: 1}, 10, world.ColorDamage)
	h.Tick(500 * time.Millisecond)
	h.ShowDamageText(r2.Vec{X: 2}, 20, world.ColorLethal)
	require.Len(t, h.Texts(), 2)

	h.Tick(500 * time.Millisecond)
	texts := h.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, 20.0, texts[0].Amount)

	h.Tick(time.Second)
	assert.Empty(t, h.Texts())
	active, available := h.PoolStats()
	assert.Equal(t, 0, active)
	assert.Equal(t, 2, available)
}

func TestDamageTextCapRecyclesOldest(t *testing.T) {
	h, err := New(Config{PoolSize: 1, MaxTexts: 3, Lifetime: time.Minute}, zaptest.NewLogger(t))
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		h.ShowDamageText(r2.Vec{}, float64(i), world.ColorDamage)
	}
	var amounts []float64
	for _, tx := range h.Texts() {
		amounts = append(amounts, tx.Amount)
	}
	assert.Equal(t, []float64{3, 4, 5}, amounts)
	active, available := h.PoolStats()
	assert.Equal(t, 3, active)
	assert.Equal(t, 0, available)
}

func TestRecycledTextRestartsItsLifetime(t *testing.T) {
	h, err := New(Config{MaxTexts: 1, Lifetime: time.Second}, zaptest.NewLogger(t))
	require.NoError(t, err)

	h.ShowDamageText(r2.Vec{}, 1, world.ColorDamage)
	h.Tick(900 * time.Millisecond)
	h.ShowDamageText(r2.Vec{}, 2, world.ColorDamage)
	h.Tick(500 * time.Millisecond)
	require.Len(t, h.Texts(), 1)
	assert.Equal(t, 2.0, h.Texts()[0].Amount)
}

func TestHealthTextAndBanners(t *testing.T) {
	h, err := New(Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	h.UpdateHealth(42.4, 100)
	assert.Equal(t, "HP: 42/100", h.HealthText())

	h.ShowVictory()
	h.ShowVictory()
	h.ShowDefeat()
	assert.True(t, h.Victory())
	assert.True(t, h.Defeat())
}
