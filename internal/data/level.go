package data

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_level.yaml
var defaultLevelYAML []byte

// Vec is a point in level units. Y grows upward.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Box is an axis-aligned rectangle anchored at its bottom-left corner.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// HazardDef is spike or kill-zone geometry.
type HazardDef struct {
	Box    `yaml:",inline"`
	Damage float64 `yaml:"damage"`
	Lethal bool    `yaml:"lethal"` // kill zone, Damage ignored
	Burn   float64 `yaml:"burn"`   // seconds of timed damage armed on entry
}

// HostileStatsDef overrides the configured hostile defaults for one slot.
// Zero fields keep the default.
type HostileStatsDef struct {
	MaxHealth    float64 `yaml:"max_health"`
	AttackDamage float64 `yaml:"attack_damage"`
	Speed        float64 `yaml:"speed"`
}

// SlotDef defines one spawn slot.
type SlotDef struct {
	Anchor       Vec             `yaml:"anchor"`
	FlipPeriod   float64         `yaml:"flip_period"`   // seconds, 0 = turn at walls only
	RespawnDelay float64         `yaml:"respawn_delay"` // seconds, 0 = global default
	Stats        HostileStatsDef `yaml:"stats"`
}

// Level is one playable stage.
type Level struct {
	Name        string      `yaml:"name"`
	Width       float64     `yaml:"width"`
	Height      float64     `yaml:"height"`
	CellSize    int         `yaml:"cell_size"`
	PlayerStart Vec         `yaml:"player_start"`
	Ground      []Box       `yaml:"ground"`
	Walls       []Box       `yaml:"walls"`
	Goal        *Box        `yaml:"goal"`
	Hazards     []HazardDef `yaml:"hazards"`
	Slots       []SlotDef   `yaml:"slots"`
}

// LoadLevel loads a level from a YAML file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(data)
}

// DefaultLevel returns the built-in demo level.
func DefaultLevel() (*Level, error) {
	return ParseLevel(defaultLevelYAML)
}

// ParseLevel decodes and validates level YAML.
func ParseLevel(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if l.CellSize <= 0 {
		l.CellSize = 2
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("invalid level %q: %w", l.Name, err)
	}
	return &l, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("bounds %gx%g must be positive", l.Width, l.Height)
	}
	var errs []error
	if !l.inside(l.PlayerStart) {
		errs = append(errs, fmt.Errorf("player_start (%g, %g) outside level", l.PlayerStart.X, l.PlayerStart.Y))
	}
	checkBoxes := func(kind string, boxes []Box) {
		for i, b := range boxes {
			if b.W <= 0 || b.H <= 0 {
				errs = append(errs, fmt.Errorf("%s[%d]: size %gx%g must be positive", kind, i, b.W, b.H))
			}
		}
	}
	checkBoxes("ground", l.Ground)
	checkBoxes("walls", l.Walls)
	if l.Goal != nil {
		checkBoxes("goal", []Box{*l.Goal})
	}
	for i, h := range l.Hazards {
		checkBoxes(fmt.Sprintf("hazards[%d]", i), []Box{h.Box})
		if !h.Lethal && (h.Damage < 0 || h.Burn < 0) {
			errs = append(errs, fmt.Errorf("hazards[%d]: negative damage", i))
		}
	}
	for i, s := range l.Slots {
		if !l.inside(s.Anchor) {
			errs = append(errs, fmt.Errorf("slots[%d]: anchor (%g, %g) outside level", i, s.Anchor.X, s.Anchor.Y))
		}
		if s.FlipPeriod < 0 || s.RespawnDelay < 0 {
			errs = append(errs, fmt.Errorf("slots[%d]: negative timer", i))
		}
	}
	return errors.Join(errs...)
}

func (l *Level) inside(p Vec) bool {
	return p.X >= 0 && p.X <= l.Width && p.Y >= 0 && p.Y <= l.Height
}
