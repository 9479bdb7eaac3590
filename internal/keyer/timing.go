// internal/keyer/timing.go
package keyer

// Morse timing constants (ITU standard)
const (
	// DitMsPerWPM converts words per minute to dit milliseconds: the PARIS
	// standard word is 50 dit units, so dit_ms = 60000 / (wpm * 50) = 1200 / wpm.
	DitMsPerWPM = 1200.0
	// DahDitRatio is the standard ratio of dah duration to dit duration (3:1)
	DahDitRatio = 3.0
	// GapDitRatio is the standard inter-element gap in dit units (1:1)
	GapDitRatio = 1.0
	// DitsPerWord is the standard word "PARIS" = 50 dit units
	DitsPerWord = 50.0

	// L-S-P weight neutral points. At L=30, S=50, P=50 the weighted timing
	// chain reduces to the standard ratios above.
	TimingLNeutralDivisor = 10.0
	TimingSNeutralDivisor = 50.0
	TimingPNeutralDivisor = 50.0

	// DefaultTimingL is the standard dash weight (3:1 ratio).
	DefaultTimingL = 30
	// DefaultTimingS is the standard gap weight (1:1 ratio).
	DefaultTimingS = 50
	// DefaultTimingP is the standard dit weight (100% of theoretical).
	DefaultTimingP = 50
)

// Timing holds the derived element and gap durations for one configuration.
// Durations are milliseconds, floating point, fixed for the life of a session.
type Timing struct {
	DitMs float64
	DahMs float64
	GapMs float64
}

// newTiming derives durations from the config's WPM and L-S-P weights:
//
//	dit = (1200 / wpm) * (P / 50)
//	dah = dit * (L / 10)
//	gap = dit * (S / 50)
//
// At the default weights this is dit = 1200/wpm, dah = 3*dit, gap = dit.
func newTiming(cfg Config) Timing {
	theoretical := DitMsPerWPM / float64(cfg.WPM)
	dit := theoretical * float64(cfg.TimingP) / TimingPNeutralDivisor
	return Timing{
		DitMs: dit,
		DahMs: dit * float64(cfg.TimingL) / TimingLNeutralDivisor,
		GapMs: dit * float64(cfg.TimingS) / TimingSNeutralDivisor,
	}
}

// EffectiveWPM computes the actual sending speed implied by the weighted
// durations, using the PARIS standard word: 10 dits, 4 dahs, 9 inter-element
// gaps, 4 inter-character gaps of 3 dits and one 7-dit word gap. Character
// and word gaps are not produced by the keyer itself and stay at fixed dit
// multiples. At default weights this returns the configured WPM.
func (t Timing) EffectiveWPM() float64 {
	parisMs := 10*t.DitMs + 4*t.DahMs + 9*t.GapMs + 4*3*t.DitMs + 7*t.DitMs
	if parisMs <= 0 {
		return 0
	}
	return 60000.0 / parisMs
}
