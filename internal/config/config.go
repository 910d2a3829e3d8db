package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Loop      LoopConfig      `toml:"loop"`
	Level     LevelConfig     `toml:"level"`
	Player    PlayerConfig    `toml:"player"`
	Hostile   HostileConfig   `toml:"hostile"`
	Combat    CombatConfig    `toml:"combat"`
	Respawn   RespawnConfig   `toml:"respawn"`
	UI        UIConfig        `toml:"ui"`
	Scripting ScriptingConfig `toml:"scripting"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

type LoopConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`
	MaxFrames uint64        `toml:"max_frames"` // 0 = until outcome or signal
	Realtime  bool          `toml:"realtime"`   // false = run frames back to back
}

type LevelConfig struct {
	Path  string `toml:"path"`  // empty = built-in level
	Input string `toml:"input"` // recorded input script, empty = idle player
}

type PlayerConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	MaxSpeed    float64 `toml:"max_speed"`
	Accel       float64 `toml:"accel"`
	Decel       float64 `toml:"decel"`
	JumpImpulse float64 `toml:"jump_impulse"`
	Gravity     float64 `toml:"gravity"`
	ProbeOffset float64 `toml:"probe_offset"`
	ProbeRadius float64 `toml:"probe_radius"`
	SnapDepth   float64 `toml:"snap_depth"`

	DashSpeed    float64       `toml:"dash_speed"`
	DashDuration time.Duration `toml:"dash_duration"`
	DashCooldown time.Duration `toml:"dash_cooldown"`
	DashDamping  float64       `toml:"dash_damping"`

	MoveThreshold float64 `toml:"move_threshold"`
	FacingLeft    bool    `toml:"facing_left"`

	MaxHealth float64 `toml:"max_health"`
	// Rule picks the passive health policy: "none", "decay" or "move_or_die".
	Rule            string  `toml:"rule"`
	DecayRate       float64 `toml:"decay_rate"`
	MoveRegen       float64 `toml:"move_regen"`
	IdleDrain       float64 `toml:"idle_drain"`
	TimedDamageRate float64 `toml:"timed_damage_rate"` // 0 disables timed damage
}

type HostileConfig struct {
	MaxHealth    float64 `toml:"max_health"`
	AttackDamage float64 `toml:"attack_damage"`
	Speed        float64 `toml:"speed"`
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	DecayRate    float64 `toml:"decay_rate"` // hp/s, 0 = none
	PatrolProbe  float64 `toml:"patrol_probe"`
	PoolCapacity int     `toml:"pool_capacity"` // 0 = one per slot

	RandomHeading bool   `toml:"random_heading"` // false = spawn facing right
	Seed          uint64 `toml:"seed"`
}

type CombatConfig struct {
	DashDamage        float64       `toml:"dash_damage"`
	BounceVelocity    float64       `toml:"bounce_velocity"`
	JumpKillTolerance float64       `toml:"jump_kill_tolerance"`
	CooldownReset     time.Duration `toml:"cooldown_reset"`
	SeparationGrace   time.Duration `toml:"separation_grace"`
}

type RespawnConfig struct {
	Delay time.Duration `toml:"delay"`
}

type UIConfig struct {
	DamageTextPool     int           `toml:"damage_text_pool"`
	DamageTextMax      int           `toml:"damage_text_max"`
	DamageTextLifetime time.Duration `toml:"damage_text_lifetime"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // empty = built-in formulas
}

type TelemetryConfig struct {
	Path     string        `toml:"path"` // empty = disabled
	Interval time.Duration `toml:"interval"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive")
	}
	switch c.Player.Rule {
	case "", "none", "decay", "move_or_die":
	default:
		return fmt.Errorf("player.rule %q: want none, decay or move_or_die", c.Player.Rule)
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.max_health must be positive")
	}
	if c.UI.DamageTextMax < 0 || c.UI.DamageTextPool < 0 {
		return fmt.Errorf("ui pool sizes must not be negative")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Loop: LoopConfig{
			TickRate:  time.Second / 60,
			MaxFrames: 0,
			Realtime:  true,
		},
		Player: PlayerConfig{
			Width:           1,
			Height:          1,
			MaxSpeed:        6,
			Accel:           40,
			Decel:           60,
			JumpImpulse:     12,
			Gravity:         30,
			ProbeOffset:     0.05,
			ProbeRadius:     0.1,
			SnapDepth:       0.75,
			DashSpeed:       15,
			DashDuration:    200 * time.Millisecond,
			DashCooldown:    time.Second,
			DashDamping:     0.5,
			MoveThreshold:   0.01,
			MaxHealth:       100,
			Rule:            "none",
			DecayRate:       1,
			MoveRegen:       5,
			IdleDrain:       10,
			TimedDamageRate: 4,
		},
		Hostile: HostileConfig{
			MaxHealth:    100,
			AttackDamage: 10,
			Speed:        1.5,
			Width:        1,
			Height:       1,
			PatrolProbe:  0.05,
		},
		Combat: CombatConfig{
			DashDamage:        50,
			BounceVelocity:    8,
			JumpKillTolerance: 0.1,
			CooldownReset:     500 * time.Millisecond,
			SeparationGrace:   100 * time.Millisecond,
		},
		Respawn: RespawnConfig{
			Delay: 3 * time.Second,
		},
		UI: UIConfig{
			DamageTextPool:     8,
			DamageTextMax:      16,
			DamageTextLifetime: time.Second,
		},
		Telemetry: TelemetryConfig{
			Interval: time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
