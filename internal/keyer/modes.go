// internal/keyer/modes.go
package keyer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode indicates a mode name that does not parse to any known value.
var ErrUnknownMode = errors.New("unknown mode name")

// IambicMode selects classic keyer behavior A or B.
type IambicMode int

const (
	// ModeA never appends a bonus element.
	ModeA IambicMode = iota
	// ModeB appends one opposite-element bonus after a squeeze is released
	// mid-element.
	ModeB
)

func (m IambicMode) String() string {
	if m == ModeB {
		return "B"
	}
	return "A"
}

// ParseIambicMode parses "a" or "b" (case-insensitive).
func ParseIambicMode(s string) (IambicMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return ModeA, nil
	case "b":
		return ModeB, nil
	default:
		return ModeA, fmt.Errorf("%w: iambic mode %q", ErrUnknownMode, s)
	}
}

// MemoryMode selects which paddle presses may be latched during an element.
type MemoryMode int

const (
	// MemoryNone disables latching entirely.
	MemoryNone MemoryMode = iota
	// MemoryDotOnly latches only dit requests.
	MemoryDotOnly
	// MemoryDahOnly latches only dah requests.
	MemoryDahOnly
	// MemoryDotAndDah latches both.
	MemoryDotAndDah
)

func (m MemoryMode) String() string {
	switch m {
	case MemoryDotOnly:
		return "DOT_ONLY"
	case MemoryDahOnly:
		return "DAH_ONLY"
	case MemoryDotAndDah:
		return "DOT_AND_DAH"
	default:
		return "NONE"
	}
}

// allowsDot reports whether dit requests may be latched.
func (m MemoryMode) allowsDot() bool {
	return m == MemoryDotOnly || m == MemoryDotAndDah
}

// allowsDah reports whether dah requests may be latched.
func (m MemoryMode) allowsDah() bool {
	return m == MemoryDahOnly || m == MemoryDotAndDah
}

// ParseMemoryMode parses "none", "dot", "dah" or "both" (case-insensitive).
func ParseMemoryMode(s string) (MemoryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return MemoryNone, nil
	case "dot", "dit":
		return MemoryDotOnly, nil
	case "dah":
		return MemoryDahOnly, nil
	case "both":
		return MemoryDotAndDah, nil
	default:
		return MemoryNone, fmt.Errorf("%w: memory mode %q", ErrUnknownMode, s)
	}
}

// SqueezeMode selects how the squeeze history used by the Mode B bonus logic
// is maintained.
type SqueezeMode int

const (
	// SqueezeSnapshot captures the combo as it was immediately before each
	// paddle change, so the bonus decision sees the state "at the moment of
	// release".
	SqueezeSnapshot SqueezeMode = iota
	// SqueezeLive always mirrors the present paddle combo.
	SqueezeLive
)

func (m SqueezeMode) String() string {
	if m == SqueezeLive {
		return "LIVE"
	}
	return "SNAPSHOT"
}

// ParseSqueezeMode parses "snapshot" or "live" (case-insensitive).
func ParseSqueezeMode(s string) (SqueezeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "snapshot":
		return SqueezeSnapshot, nil
	case "live":
		return SqueezeLive, nil
	default:
		return SqueezeSnapshot, fmt.Errorf("%w: squeeze mode %q", ErrUnknownMode, s)
	}
}
