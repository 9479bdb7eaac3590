package keyer

import (
	"math"
	"testing"
)

const timingTolerance = 1e-9

func TestTiming_StandardRatios(t *testing.T) {
	for _, wpm := range []int{5, 12, 15, 20, 25, 30, 40, 60} {
		cfg := DefaultConfig()
		cfg.WPM = wpm
		tm := cfg.Timing()

		wantDit := 1200.0 / float64(wpm)
		if math.Abs(tm.DitMs-wantDit) > timingTolerance {
			t.Errorf("wpm %d: DitMs = %v, want %v", wpm, tm.DitMs, wantDit)
		}
		if math.Abs(tm.DahMs-3*wantDit) > timingTolerance {
			t.Errorf("wpm %d: DahMs = %v, want %v", wpm, tm.DahMs, 3*wantDit)
		}
		if math.Abs(tm.GapMs-wantDit) > timingTolerance {
			t.Errorf("wpm %d: GapMs = %v, want %v", wpm, tm.GapMs, wantDit)
		}
	}
}

func TestTiming_TwentyWPM(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WPM = 20
	tm := cfg.Timing()

	if tm.DitMs != 60 {
		t.Errorf("DitMs = %v, want 60", tm.DitMs)
	}
	if tm.DahMs != 180 {
		t.Errorf("DahMs = %v, want 180", tm.DahMs)
	}
	if tm.GapMs != 60 {
		t.Errorf("GapMs = %v, want 60", tm.GapMs)
	}
}

func TestTiming_LSPWeights(t *testing.T) {
	tests := []struct {
		name    string
		l, s, p int
		wantDit float64
		wantDah float64
		wantGap float64
	}{
		{"standard 30-50-50", 30, 50, 50, 60, 180, 60},
		{"heavy dash L=40", 40, 50, 50, 60, 240, 60},
		{"tight gap S=25", 30, 25, 50, 60, 180, 30},
		{"light dit P=25", 30, 50, 25, 30, 90, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.WPM = 20
			cfg.TimingL = tt.l
			cfg.TimingS = tt.s
			cfg.TimingP = tt.p
			tm := cfg.Timing()

			if math.Abs(tm.DitMs-tt.wantDit) > timingTolerance {
				t.Errorf("DitMs = %v, want %v", tm.DitMs, tt.wantDit)
			}
			if math.Abs(tm.DahMs-tt.wantDah) > timingTolerance {
				t.Errorf("DahMs = %v, want %v", tm.DahMs, tt.wantDah)
			}
			if math.Abs(tm.GapMs-tt.wantGap) > timingTolerance {
				t.Errorf("GapMs = %v, want %v", tm.GapMs, tt.wantGap)
			}
		})
	}
}

func TestTiming_EffectiveWPMAtDefaults(t *testing.T) {
	for _, wpm := range []int{10, 20, 35} {
		cfg := DefaultConfig()
		cfg.WPM = wpm
		got := cfg.Timing().EffectiveWPM()
		if math.Abs(got-float64(wpm)) > 1e-6 {
			t.Errorf("wpm %d: EffectiveWPM() = %v, want %v", wpm, got, wpm)
		}
	}
}

func TestTiming_EffectiveWPMWithWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WPM = 20
	cfg.TimingL = 40 // longer dashes slow the effective speed
	got := cfg.Timing().EffectiveWPM()
	if got >= 20 {
		t.Errorf("EffectiveWPM() = %v, want < 20 with L=40", got)
	}

	cfg.TimingL = DefaultTimingL
	cfg.TimingS = 25 // tighter gaps speed it up
	got = cfg.Timing().EffectiveWPM()
	if got <= 20 {
		t.Errorf("EffectiveWPM() = %v, want > 20 with S=25", got)
	}
}
