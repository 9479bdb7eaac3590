// internal/timeline/recorder.go
// Package timeline records keyer transitions as seen from the host side.
// The keyer core emits no callbacks; a Recorder is fed one snapshot after
// each tick and diffs it against the previous one, producing a time-stamped
// key-down/key-up event log suitable for driving a key line, a sidetone
// gate, or offline inspection of keying behavior.
package timeline

import "github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"

// EventKind distinguishes the two observable key line transitions.
type EventKind int

const (
	// KeyDown marks the start of an element (key line asserted).
	KeyDown EventKind = iota
	// KeyUp marks the end of an element (key line released).
	KeyUp
)

func (k EventKind) String() string {
	if k == KeyUp {
		return "KEY_UP"
	}
	return "KEY_DOWN"
}

// Event is one key line transition.
type Event struct {
	Kind    EventKind
	Element keyer.Element
	AtMs    float64
}

// Recorder builds an event log from successive keyer snapshots.
// Not safe for concurrent use.
type Recorder struct {
	events []Event
	prev   keyer.Snapshot
	seeded bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe feeds the snapshot taken after a tick, with the host clock's
// position in milliseconds. Consecutive snapshots that differ in key state
// - or that switch elements back-to-back without an intervening key-up,
// which a correct keyer never produces - append events.
func (r *Recorder) Observe(s keyer.Snapshot, nowMs float64) {
	if !r.seeded {
		r.seeded = true
		if s.KeyDown {
			r.events = append(r.events, Event{Kind: KeyDown, Element: s.Element, AtMs: nowMs})
		}
		r.prev = s
		return
	}

	switch {
	case !r.prev.KeyDown && s.KeyDown:
		r.events = append(r.events, Event{Kind: KeyDown, Element: s.Element, AtMs: nowMs})
	case r.prev.KeyDown && !s.KeyDown:
		r.events = append(r.events, Event{Kind: KeyUp, Element: r.prev.Element, AtMs: nowMs})
	case r.prev.KeyDown && s.KeyDown && r.prev.Element != s.Element:
		r.events = append(r.events,
			Event{Kind: KeyUp, Element: r.prev.Element, AtMs: nowMs},
			Event{Kind: KeyDown, Element: s.Element, AtMs: nowMs})
	}
	r.prev = s
}

// Events returns the log recorded so far. The slice is owned by the
// recorder; callers must not mutate it.
func (r *Recorder) Events() []Event {
	return r.events
}

// Elements returns just the keyed element sequence, one entry per key-down.
func (r *Recorder) Elements() []keyer.Element {
	var out []keyer.Element
	for _, e := range r.events {
		if e.Kind == KeyDown {
			out = append(out, e.Element)
		}
	}
	return out
}

// Reset discards the log and the diff seed.
func (r *Recorder) Reset() {
	r.events = nil
	r.seeded = false
	r.prev = keyer.Snapshot{}
}
