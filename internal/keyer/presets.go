// internal/keyer/presets.go
package keyer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset indicates a preset name that does not parse.
var ErrUnknownPreset = errors.New("unknown preset name")

// Preset names a classic keyer behavior family. Presets are pure Config
// factories; nothing is persisted.
//
// The families approximate well-known commercial keyers:
//
//   - SuperKeyer (II/III): tight late-opening memory window, slightly
//     aggressive 2.8:1 timing.
//   - Accukeyer: standard window and standard ITU timing; the most forgiving
//     with noisy paddles. This is the default family.
//   - Curtis "A": Mode A with live squeeze tracking and slightly
//     conservative 3.2:1 timing.
//   - NoMemory: no latching at all, useful for debugging.
type Preset int

const (
	PresetSuperKeyer Preset = iota
	PresetSuperKeyerDitMemory
	PresetSuperKeyerDahMemory
	PresetAccukeyer
	PresetAccukeyerDitMemory
	PresetAccukeyerDahMemory
	PresetCurtisA
	PresetCurtisADitMemory
	PresetCurtisADahMemory
	PresetNoMemory
)

// presetData mirrors the preset lookup table of the classic firmware
// families: memory dead zones, memory selection, iambic/squeeze behavior and
// L-S-P weights.
type presetData struct {
	startPct float64
	endPct   float64
	memory   MemoryMode
	iambic   IambicMode
	squeeze  SqueezeMode
	l, s, p  int
}

var presetTable = map[Preset]presetData{
	PresetSuperKeyer:          {55, 1, MemoryDotAndDah, ModeB, SqueezeSnapshot, 28, 48, 52},
	PresetSuperKeyerDitMemory: {55, 1, MemoryDotOnly, ModeB, SqueezeSnapshot, 28, 48, 52},
	PresetSuperKeyerDahMemory: {55, 1, MemoryDahOnly, ModeB, SqueezeSnapshot, 28, 48, 52},
	PresetAccukeyer:           {60, 1, MemoryDotAndDah, ModeB, SqueezeSnapshot, 30, 50, 50},
	PresetAccukeyerDitMemory:  {60, 1, MemoryDotOnly, ModeB, SqueezeSnapshot, 30, 50, 50},
	PresetAccukeyerDahMemory:  {60, 1, MemoryDahOnly, ModeB, SqueezeSnapshot, 30, 50, 50},
	PresetCurtisA:             {60, 1, MemoryDotAndDah, ModeA, SqueezeLive, 32, 52, 48},
	PresetCurtisADitMemory:    {60, 1, MemoryDotOnly, ModeA, SqueezeLive, 32, 52, 48},
	PresetCurtisADahMemory:    {60, 1, MemoryDahOnly, ModeA, SqueezeLive, 32, 52, 48},
	PresetNoMemory:            {60, 1, MemoryNone, ModeA, SqueezeSnapshot, 30, 50, 50},
}

var presetNames = map[Preset]string{
	PresetSuperKeyer:          "superkeyer",
	PresetSuperKeyerDitMemory: "superkeyer-dit",
	PresetSuperKeyerDahMemory: "superkeyer-dah",
	PresetAccukeyer:           "accukeyer",
	PresetAccukeyerDitMemory:  "accukeyer-dit",
	PresetAccukeyerDahMemory:  "accukeyer-dah",
	PresetCurtisA:             "curtis-a",
	PresetCurtisADitMemory:    "curtis-a-dit",
	PresetCurtisADahMemory:    "curtis-a-dah",
	PresetNoMemory:            "no-memory",
}

func (p Preset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePreset parses a preset name as printed by String (case-insensitive).
func ParsePreset(s string) (Preset, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for p, name := range presetNames {
		if name == want {
			return p, nil
		}
	}
	return PresetAccukeyer, fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

// PresetNames returns every recognized preset name, for CLI help text.
func PresetNames() []string {
	names := make([]string, 0, len(presetNames))
	for p := Preset(0); int(p) < len(presetNames); p++ {
		names = append(names, presetNames[p])
	}
	return names
}

// Config builds the session parameters for this preset at the given speed.
func (p Preset) Config(wpm int) Config {
	d, ok := presetTable[p]
	if !ok {
		d = presetTable[PresetAccukeyer]
	}
	return Config{
		WPM:              wpm,
		IambicMode:       d.iambic,
		MemoryMode:       d.memory,
		SqueezeMode:      d.squeeze,
		MemBlockStartPct: d.startPct,
		MemBlockEndPct:   d.endPct,
		TimingL:          d.l,
		TimingS:          d.s,
		TimingP:          d.p,
	}
}
