// internal/keyer/config.go
package keyer

import "errors"

var (
	// ErrInvalidWPM indicates WPM must be positive
	ErrInvalidWPM = errors.New("WPM must be positive")
	// ErrInvalidMemBlockStart indicates the start dead zone must be 0-100
	ErrInvalidMemBlockStart = errors.New("memory block start percent must be between 0 and 100")
	// ErrInvalidMemBlockEnd indicates the end dead zone must be 0-100
	ErrInvalidMemBlockEnd = errors.New("memory block end percent must be between 0 and 100")
	// ErrEmptyMemoryWindow indicates the dead zones leave no valid window
	ErrEmptyMemoryWindow = errors.New("memory block percents must sum to less than 100")
	// ErrInvalidTimingL indicates the dash weight must be 10-90
	ErrInvalidTimingL = errors.New("timing L must be between 10 and 90")
	// ErrInvalidTimingS indicates the gap weight must be 0-99
	ErrInvalidTimingS = errors.New("timing S must be between 0 and 99")
	// ErrInvalidTimingP indicates the dit weight must be 10-99
	ErrInvalidTimingP = errors.New("timing P must be between 10 and 99")
)

// Config holds one keying session's parameters. A Config is immutable for
// the life of a Keyer: reconfiguration means building a new Config and a new
// Keyer, never mutating fields of a running session.
type Config struct {
	// WPM is the keying speed in words per minute. Must be positive.
	WPM int

	IambicMode  IambicMode
	MemoryMode  MemoryMode
	SqueezeMode SqueezeMode

	// MemBlockStartPct and MemBlockEndPct are dead zones, as percentages of
	// the active element's duration, at its start and end. Paddle changes are
	// latched only while element progress lies in
	// [MemBlockStartPct, 100 - MemBlockEndPct]. The zones model the hardware
	// dead time that suppresses immediate-release chatter.
	MemBlockStartPct float64
	MemBlockEndPct   float64

	// L-S-P timing weights (Linea-Spazio-Punto). TimingL scales the dash
	// (L=30 is 3:1), TimingS the inter-element gap (S=50 is 1:1), TimingP the
	// dit itself (P=50 is 100%). The defaults reproduce standard ITU timing.
	TimingL int
	TimingS int
	TimingP int
}

// DefaultConfig returns the standard session parameters: 20 WPM, Mode B,
// both memories, snapshot squeeze tracking, no dead zones, ITU timing.
func DefaultConfig() Config {
	return Config{
		WPM:         20,
		IambicMode:  ModeB,
		MemoryMode:  MemoryDotAndDah,
		SqueezeMode: SqueezeSnapshot,
		TimingL:     DefaultTimingL,
		TimingS:     DefaultTimingS,
		TimingP:     DefaultTimingP,
	}
}

// Validate checks the parameter ranges. An empty or inverted memory window
// is rejected here rather than left as a silently always-masked session.
func (c Config) Validate() error {
	if c.WPM <= 0 {
		return ErrInvalidWPM
	}
	if c.MemBlockStartPct < 0 || c.MemBlockStartPct > 100 {
		return ErrInvalidMemBlockStart
	}
	if c.MemBlockEndPct < 0 || c.MemBlockEndPct > 100 {
		return ErrInvalidMemBlockEnd
	}
	if c.MemBlockStartPct+c.MemBlockEndPct >= 100 {
		return ErrEmptyMemoryWindow
	}
	if c.TimingL < 10 || c.TimingL > 90 {
		return ErrInvalidTimingL
	}
	if c.TimingS < 0 || c.TimingS > 99 {
		return ErrInvalidTimingS
	}
	if c.TimingP < 10 || c.TimingP > 99 {
		return ErrInvalidTimingP
	}
	return nil
}

// Timing derives the element and gap durations for this config.
func (c Config) Timing() Timing {
	return newTiming(c)
}
