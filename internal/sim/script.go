// internal/sim/script.go
// Package sim replays scripted paddle sequences against a keyer session and
// collects what it keyed. It backs the play command and the end-to-end
// tests; nothing here runs in the real-time path.
package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoEvents indicates a script without any paddle events
	ErrNoEvents = errors.New("script has no paddle events")
	// ErrNegativeEventTime indicates a paddle event before time zero
	ErrNegativeEventTime = errors.New("paddle event time must be non-negative")
)

// PaddleEvent is one scripted paddle level change: at AtMs both paddle
// levels are set to the given booleans, exactly as a pair of GPIO lines
// would read.
type PaddleEvent struct {
	AtMs float64 `yaml:"at_ms"`
	Dit  bool    `yaml:"dit"`
	Dah  bool    `yaml:"dah"`
}

// Script is a time-ordered paddle sequence. DurationMs bounds the replay;
// when zero the driver derives a duration long enough to drain whatever the
// last event started.
type Script struct {
	Title      string        `yaml:"title"`
	DurationMs float64       `yaml:"duration_ms"`
	Events     []PaddleEvent `yaml:"events"`
}

// Validate checks the script shape.
func (s *Script) Validate() error {
	if len(s.Events) == 0 {
		return ErrNoEvents
	}
	for i, e := range s.Events {
		if e.AtMs < 0 {
			return fmt.Errorf("%w: event %d at %v ms", ErrNegativeEventTime, i, e.AtMs)
		}
	}
	return nil
}

// LoadScript reads and validates a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
