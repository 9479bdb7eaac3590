// internal/cw/readback.go
package cw

import (
	"errors"
	"strings"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"
)

// Silence classification boundaries, in dit units. The keyer itself only
// emits one-dit gaps between elements; longer silences are operator pauses
// between characters (3 dits) and words (7 dits).
const (
	// CharBoundaryRatio is the midpoint of the 1-dit element gap and the
	// 3-dit character gap
	CharBoundaryRatio = 2.0
	// WordBoundaryRatio is the midpoint of the 3-dit character gap and the
	// 7-dit word gap
	WordBoundaryRatio = 5.0
)

// ErrInvalidDitDuration indicates the dit duration must be positive
var ErrInvalidDitDuration = errors.New("dit duration must be positive")

// Readback accumulates keyed elements and the silences between them and
// decodes them through the Morse tree. Not safe for concurrent use; feed it
// from the goroutine that observes the keyer.
type Readback struct {
	ditMs     float64
	treeIndex int // position in MorseTree (1 = start)
	inChar    bool
	out       strings.Builder
}

// NewReadback creates a readback decoder for a session keying at the given
// dit duration.
func NewReadback(ditMs float64) (*Readback, error) {
	if ditMs <= 0 {
		return nil, ErrInvalidDitDuration
	}
	return &Readback{ditMs: ditMs, treeIndex: 1}, nil
}

// Element records one keyed element.
func (r *Readback) Element(e keyer.Element) {
	if !r.inChar {
		r.treeIndex = 1
		r.inChar = true
	}

	if e == keyer.Dah {
		r.treeIndex = r.treeIndex*2 + 1
	} else {
		r.treeIndex = r.treeIndex * 2
	}

	// Too many elements for any known character - reset
	if r.treeIndex >= len(MorseTree) {
		r.treeIndex = 1
		r.inChar = false
	}
}

// Gap records a silence of ms milliseconds following an element. Ordinary
// inter-element gaps accumulate into the current character; character-length
// pauses emit it; word-length pauses also emit a space.
func (r *Readback) Gap(ms float64) {
	units := ms / r.ditMs
	if units <= CharBoundaryRatio {
		return
	}
	r.flushChar()
	if units > WordBoundaryRatio {
		r.out.WriteByte(' ')
	}
}

// Flush emits any character still being built. Call it once the session
// goes quiet for good.
func (r *Readback) Flush() {
	r.flushChar()
}

func (r *Readback) flushChar() {
	if !r.inChar {
		return
	}
	if r.treeIndex > 1 && r.treeIndex < len(MorseTree) {
		if ch := MorseTree[r.treeIndex]; ch != 0 {
			r.out.WriteRune(ch)
		}
	}
	r.treeIndex = 1
	r.inChar = false
}

// String returns the text decoded so far.
func (r *Readback) String() string {
	return r.out.String()
}

// Reset clears the decoded text and any character in progress.
func (r *Readback) Reset() {
	r.treeIndex = 1
	r.inChar = false
	r.out.Reset()
}
