package cw

import (
	"testing"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"
)

const ditMs = 60.0 // 20 WPM

// feed sends a character's elements with one-dit gaps between them, then the
// trailing gap in dit units.
func feed(r *Readback, elements []keyer.Element, trailingGapUnits float64) {
	for i, e := range elements {
		r.Element(e)
		if i < len(elements)-1 {
			r.Gap(ditMs)
		}
	}
	r.Gap(trailingGapUnits * ditMs)
}

func TestNewReadback_InvalidDit(t *testing.T) {
	if _, err := NewReadback(0); err != ErrInvalidDitDuration {
		t.Errorf("NewReadback(0) error = %v, want %v", err, ErrInvalidDitDuration)
	}
	if _, err := NewReadback(-10); err != ErrInvalidDitDuration {
		t.Errorf("NewReadback(-10) error = %v, want %v", err, ErrInvalidDitDuration)
	}
}

func TestReadback_SingleCharacters(t *testing.T) {
	tests := []struct {
		name     string
		elements []keyer.Element
		want     string
	}{
		{"E", []keyer.Element{keyer.Dit}, "E"},
		{"T", []keyer.Element{keyer.Dah}, "T"},
		{"A", []keyer.Element{keyer.Dit, keyer.Dah}, "A"},
		{"N", []keyer.Element{keyer.Dah, keyer.Dit}, "N"},
		{"S", []keyer.Element{keyer.Dit, keyer.Dit, keyer.Dit}, "S"},
		{"O", []keyer.Element{keyer.Dah, keyer.Dah, keyer.Dah}, "O"},
		{"Q", []keyer.Element{keyer.Dah, keyer.Dah, keyer.Dit, keyer.Dah}, "Q"},
		{"5", []keyer.Element{keyer.Dit, keyer.Dit, keyer.Dit, keyer.Dit, keyer.Dit}, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReadback(ditMs)
			if err != nil {
				t.Fatalf("NewReadback() error = %v", err)
			}
			feed(r, tt.elements, 3)
			if got := r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadback_CQ(t *testing.T) {
	r, err := NewReadback(ditMs)
	if err != nil {
		t.Fatalf("NewReadback() error = %v", err)
	}

	// C = -.-.  Q = --.-
	feed(r, []keyer.Element{keyer.Dah, keyer.Dit, keyer.Dah, keyer.Dit}, 3)
	feed(r, []keyer.Element{keyer.Dah, keyer.Dah, keyer.Dit, keyer.Dah}, 3)

	if got := r.String(); got != "CQ" {
		t.Errorf("String() = %q, want %q", got, "CQ")
	}
}

func TestReadback_WordSpace(t *testing.T) {
	r, err := NewReadback(ditMs)
	if err != nil {
		t.Fatalf("NewReadback() error = %v", err)
	}

	// "E T" with a 7-dit word gap between them.
	feed(r, []keyer.Element{keyer.Dit}, 7)
	feed(r, []keyer.Element{keyer.Dah}, 3)

	if got := r.String(); got != "E T" {
		t.Errorf("String() = %q, want %q", got, "E T")
	}
}

func TestReadback_FlushEndsLastCharacter(t *testing.T) {
	r, err := NewReadback(ditMs)
	if err != nil {
		t.Fatalf("NewReadback() error = %v", err)
	}

	r.Element(keyer.Dit)
	r.Gap(ditMs)
	r.Element(keyer.Dah)
	// No trailing pause arrives; the host flushes at end of session.
	r.Flush()

	if got := r.String(); got != "A" {
		t.Errorf("String() = %q, want %q", got, "A")
	}
}

func TestReadback_OverlongSequenceResets(t *testing.T) {
	r, err := NewReadback(ditMs)
	if err != nil {
		t.Fatalf("NewReadback() error = %v", err)
	}

	// Six dits overflow the tree (max depth is five elements); the
	// sequence is discarded rather than emitting a wrong character.
	for i := 0; i < 6; i++ {
		r.Element(keyer.Dit)
		r.Gap(ditMs)
	}
	r.Gap(3 * ditMs)

	if got := r.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestReadback_Reset(t *testing.T) {
	r, err := NewReadback(ditMs)
	if err != nil {
		t.Fatalf("NewReadback() error = %v", err)
	}

	feed(r, []keyer.Element{keyer.Dit}, 3)
	r.Reset()

	if got := r.String(); got != "" {
		t.Errorf("String() = %q after Reset, want empty", got)
	}
}
