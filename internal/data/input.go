package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InputSegment holds one intent for a number of frames.
type InputSegment struct {
	Frames     int     `yaml:"frames"`
	Horizontal float64 `yaml:"horizontal"`
	Vertical   float64 `yaml:"vertical"`
	Jump       bool    `yaml:"jump"`
	Dash       bool    `yaml:"dash"`
}

// InputScript is a recorded run replayed by the headless host.
type InputScript struct {
	Loop     bool           `yaml:"loop"`
	Segments []InputSegment `yaml:"segments"`
}

// TotalFrames returns the length of one pass through the script.
func (s *InputScript) TotalFrames() int {
	n := 0
	for _, seg := range s.Segments {
		n += seg.Frames
	}
	return n
}

// LoadInputScript loads an input script from a YAML file.
func LoadInputScript(path string) (*InputScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	var s InputScript
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	for i, seg := range s.Segments {
		if seg.Frames <= 0 {
			return nil, fmt.Errorf("input script segment %d: frames must be positive", i)
		}
	}
	return &s, nil
}
