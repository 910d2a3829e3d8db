package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLevelParses(t *testing.T) {
	l, err := DefaultLevel()
	require.NoError(t, err)
	assert.Equal(t, "proving-grounds", l.Name)
	assert.Len(t, l.Slots, 3)
	require.NotNil(t, l.Goal)
	assert.Equal(t, 2.0, l.Slots[1].RespawnDelay)
	assert.Equal(t, 150.0, l.Slots[2].Stats.MaxHealth)
	assert.True(t, l.Hazards[1].Lethal)
	assert.Equal(t, 10.0, l.Hazards[0].Damage)
	assert.Equal(t, Box{X: 28, Y: 1, W: 2, H: 0.5}, l.Hazards[0].Box)
}

func TestParseLevelValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no bounds", "name: x\n", "must be positive"},
		{"player outside", "width: 10\nheight: 10\nplayer_start: {x: 20, y: 1}\n", "player_start"},
		{"flat ground", "width: 10\nheight: 10\nground: [{x: 0, y: 0, w: 10, h: 0}]\n", "ground[0]"},
		{"anchor outside", "width: 10\nheight: 10\nslots: [{anchor: {x: -1, y: 1}}]\n", "slots[0]"},
		{"negative delay", "width: 10\nheight: 10\nslots: [{anchor: {x: 1, y: 1}, respawn_delay: -2}]\n", "negative timer"},
		{"bad yaml", "width: [\n", "parse level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLevelWithoutSlotsIsValid(t *testing.T) {
	l, err := ParseLevel([]byte("width: 10\nheight: 5\n"))
	require.NoError(t, err)
	assert.Empty(t, l.Slots)
	assert.Equal(t, 2, l.CellSize)
}

func TestLoadLevelMissingFile(t *testing.T) {
	_, err := LoadLevel(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read level")
}

func TestShippedLevelMatchesDefault(t *testing.T) {
	shipped, err := LoadLevel(filepath.Join("..", "..", "data", "level.yaml"))
	require.NoError(t, err)
	def, err := DefaultLevel()
	require.NoError(t, err)
	assert.Equal(t, def, shipped)
}

func TestLoadInputScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
loop: true
segments:
  - {frames: 10, horizontal: 1}
  - {frames: 1, dash: true}
`), 0o644))

	s, err := LoadInputScript(path)
	require.NoError(t, err)
	assert.True(t, s.Loop)
	assert.Equal(t, 11, s.TotalFrames())
	assert.True(t, s.Segments[1].Dash)

	require.NoError(t, os.WriteFile(path, []byte("segments: [{frames: 0}]\n"), 0o644))
	_, err = LoadInputScript(path)
	assert.ErrorContains(t, err, "frames must be positive")
}

func TestShippedRunScriptLoads(t *testing.T) {
	s, err := LoadInputScript(filepath.Join("..", "..", "data", "run.yaml"))
	require.NoError(t, err)
	assert.False(t, s.Loop)
	assert.Greater(t, s.TotalFrames(), 0)
}
