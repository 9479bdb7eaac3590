// internal/sim/driver_test.go
package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"
)

func newKeyer(t *testing.T, mutate func(*keyer.Config)) *keyer.Keyer {
	t.Helper()
	cfg := keyer.DefaultConfig()
	cfg.WPM = 20
	if mutate != nil {
		mutate(&cfg)
	}
	k, err := keyer.New(cfg)
	if err != nil {
		t.Fatalf("New(%+v) error: %v", cfg, err)
	}
	return k
}

func TestRun_InvalidTickPeriod(t *testing.T) {
	script := &Script{Events: []PaddleEvent{{AtMs: 0, Dit: true}}}
	_, err := Run(newKeyer(t, nil), script, 0)
	if !errors.Is(err, ErrInvalidTickPeriod) {
		t.Errorf("Run() error = %v, want %v", err, ErrInvalidTickPeriod)
	}
}

func TestRun_EmptyScript(t *testing.T) {
	_, err := Run(newKeyer(t, nil), &Script{}, 1)
	if !errors.Is(err, ErrNoEvents) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoEvents)
	}
}

func TestRun_SingleDitDecodesE(t *testing.T) {
	script := &Script{
		Events: []PaddleEvent{
			{AtMs: 0, Dit: true},
			{AtMs: 30},
		},
	}
	res, err := Run(newKeyer(t, nil), script, 1)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := []keyer.Element{keyer.Dit}
	if len(res.Elements) != len(want) || res.Elements[0] != want[0] {
		t.Errorf("Run() elements = %v, want %v", res.Elements, want)
	}
	if res.Text != "E" {
		t.Errorf("Run() text = %q, want %q", res.Text, "E")
	}
	if res.DurationMs <= script.Events[1].AtMs {
		t.Errorf("Run() duration = %v, want a drain tail past %v", res.DurationMs, script.Events[1].AtMs)
	}
}

func TestRun_SqueezeAlternatesFromDit(t *testing.T) {
	k := newKeyer(t, func(cfg *keyer.Config) {
		cfg.IambicMode = keyer.ModeA
	})
	script := &Script{
		Events: []PaddleEvent{
			{AtMs: 0, Dit: true, Dah: true},
			{AtMs: 500},
		},
	}
	res, err := Run(k, script, 1)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.Elements) < 4 {
		t.Fatalf("Run() keyed %v, want at least 4 elements", res.Elements)
	}
	if res.Elements[0] != keyer.Dit {
		t.Errorf("Run() first element = %v, want %v", res.Elements[0], keyer.Dit)
	}
	for i := 1; i < len(res.Elements); i++ {
		if res.Elements[i] == res.Elements[i-1] {
			t.Errorf("Run() elements %v do not alternate at index %d", res.Elements, i)
		}
	}
}

func TestRun_EventsSortedByTime(t *testing.T) {
	// Release listed before press; the driver must order by AtMs.
	script := &Script{
		Events: []PaddleEvent{
			{AtMs: 30},
			{AtMs: 0, Dit: true},
		},
	}
	res, err := Run(newKeyer(t, nil), script, 1)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.Elements) != 1 || res.Elements[0] != keyer.Dit {
		t.Errorf("Run() elements = %v, want [DIT]", res.Elements)
	}
}

func TestRun_WordGapDecoded(t *testing.T) {
	// Two dits with an eight-unit pause between them reads as "E E".
	script := &Script{
		Events: []PaddleEvent{
			{AtMs: 0, Dit: true},
			{AtMs: 30},
			{AtMs: 540, Dit: true},
			{AtMs: 570},
		},
	}
	res, err := Run(newKeyer(t, nil), script, 1)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Text != "E E" {
		t.Errorf("Run() text = %q, want %q", res.Text, "E E")
	}
}

func TestRun_ExplicitDurationBoundsReplay(t *testing.T) {
	// Duration cuts the replay off mid element; the key never comes back up.
	script := &Script{
		DurationMs: 30,
		Events:     []PaddleEvent{{AtMs: 0, Dit: true}},
	}
	res, err := Run(newKeyer(t, nil), script, 1)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.DurationMs != 30 {
		t.Errorf("Run() duration = %v, want 30", res.DurationMs)
	}
	if len(res.Elements) != 1 {
		t.Errorf("Run() elements = %v, want the started dit only", res.Elements)
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")
	body := `title: single dit
events:
  - at_ms: 0
    dit: true
  - at_ms: 30
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}
	if s.Title != "single dit" {
		t.Errorf("LoadScript() title = %q, want %q", s.Title, "single dit")
	}
	if len(s.Events) != 2 || !s.Events[0].Dit || s.Events[1].Dit {
		t.Errorf("LoadScript() events = %+v", s.Events)
	}
}

func TestLoadScript_MissingFile(t *testing.T) {
	if _, err := LoadScript(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadScript() expected error for missing file")
	}
}

func TestScript_Validate(t *testing.T) {
	tests := []struct {
		name    string
		script  Script
		wantErr error
	}{
		{"valid", Script{Events: []PaddleEvent{{AtMs: 0, Dit: true}}}, nil},
		{"no events", Script{}, ErrNoEvents},
		{"negative time", Script{Events: []PaddleEvent{{AtMs: -1}}}, ErrNegativeEventTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.script.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
