// internal/keyer/element.go
// Package keyer implements the decision core of an iambic Morse keyer: a
// tick-driven finite state machine that turns two paddle contacts into a
// timed stream of dit and dah elements. The package performs no I/O of its
// own - the host drives it with Tick and UpdatePaddles and reads the keying
// state back after each tick.
package keyer

// Element is a single Morse keying element.
type Element int

const (
	// Dit is the short element (one unit).
	Dit Element = iota
	// Dah is the long element (three units at standard timing).
	Dah
)

// Opposite returns the other element (Dit for Dah, Dah for Dit).
func (e Element) Opposite() Element {
	if e == Dit {
		return Dah
	}
	return Dit
}

func (e Element) String() string {
	if e == Dah {
		return "DAH"
	}
	return "DIT"
}

// PaddleCombo classifies the instantaneous state of the two paddle contacts.
type PaddleCombo int

const (
	// ComboNone means neither paddle is pressed.
	ComboNone PaddleCombo = iota
	// ComboDitOnly means only the dit paddle is pressed.
	ComboDitOnly
	// ComboDahOnly means only the dah paddle is pressed.
	ComboDahOnly
	// ComboBoth means both paddles are pressed (a squeeze).
	ComboBoth
)

func (c PaddleCombo) String() string {
	switch c {
	case ComboDitOnly:
		return "DIT_ONLY"
	case ComboDahOnly:
		return "DAH_ONLY"
	case ComboBoth:
		return "BOTH"
	default:
		return "NONE"
	}
}

// classifyCombo maps the raw paddle booleans to a combo. Pure, no state.
func classifyCombo(dit, dah bool) PaddleCombo {
	switch {
	case dit && dah:
		return ComboBoth
	case dit:
		return ComboDitOnly
	case dah:
		return ComboDahOnly
	default:
		return ComboNone
	}
}
