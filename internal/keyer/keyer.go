// internal/keyer/keyer.go
package keyer

import "sync"

// State is the keyer's FSM state.
type State int

const (
	// StateIdle means nothing is being sent and nothing is queued.
	StateIdle State = iota
	// StateSendDit means a dit element is on the air (key down).
	StateSendDit
	// StateSendDah means a dah element is on the air (key down).
	StateSendDah
	// StateGap is the one-unit silence between elements (key up).
	StateGap
)

func (s State) String() string {
	switch s {
	case StateSendDit:
		return "SEND_DIT"
	case StateSendDah:
		return "SEND_DAH"
	case StateGap:
		return "INTER_ELEMENT_GAP"
	default:
		return "IDLE"
	}
}

// KeyDown reports whether an element is on the air in this state.
func (s State) KeyDown() bool {
	return s == StateSendDit || s == StateSendDah
}

// Snapshot is a consistent copy of the observable keyer state, taken under
// the keyer's lock. Hosts read one after each tick to drive the key line,
// sidetone or a transition recorder.
type Snapshot struct {
	State              State
	KeyDown            bool
	Element            Element
	HasElement         bool
	ElementProgressPct float64
	QueueDepth         int
	DitPressed         bool
	DahPressed         bool
}

// Keyer is one active keying session. It is driven synchronously: the host
// calls Tick at its timer period (typically ~1 ms) and UpdatePaddles on every
// physical paddle edge. An internal mutex serializes the two entry points so
// paddle edges may arrive from a different goroutine than the tick source;
// both paths are O(1) and never block, sleep or allocate.
type Keyer struct {
	cfg    Config
	timing Timing

	mu sync.Mutex

	state      State
	current    Element
	hasElement bool

	elementElapsedMs float64
	elementTotalMs   float64
	gapElapsedMs     float64
	gapTotalMs       float64
	progressPct      float64

	queue elementQueue

	dotRequested bool
	dahRequested bool

	ditPressed bool
	dahPressed bool

	squeezeSeen    bool
	lastValidCombo PaddleCombo
}

// New creates a keying session bound to cfg. The config is validated here;
// division by zero or a degenerate memory window must never reach the
// running state machine.
func New(cfg Config) (*Keyer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Keyer{
		cfg:    cfg,
		timing: cfg.Timing(),
	}, nil
}

// UpdatePaddles records a physical paddle level change. Call it on every
// edge; it may be called any number of times between ticks, including zero.
// Every call feeds the squeeze history immediately, while memory latching
// observes only the paddle state present at the next Tick.
func (k *Keyer) UpdatePaddles(dit, dah bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	prev := classifyCombo(k.ditPressed, k.dahPressed)
	k.ditPressed = dit
	k.dahPressed = dah
	now := classifyCombo(dit, dah)

	switch k.cfg.SqueezeMode {
	case SqueezeSnapshot:
		// Capture the combo as it was at the moment of the transition. An
		// update that changes nothing leaves the history untouched.
		if prev != now {
			k.lastValidCombo = prev
		}
	case SqueezeLive:
		k.lastValidCombo = now
	}
}

// Tick advances the session by dtMs milliseconds. Negative dtMs is clamped
// to zero (time never runs backwards; a host passing a negative delta gets a
// no-op rather than a corrupted element).
func (k *Keyer) Tick(dtMs float64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if dtMs < 0 {
		dtMs = 0
	}

	switch k.state {
	case StateIdle:
		k.tickIdle()
	case StateSendDit, StateSendDah:
		k.tickElement(dtMs)
	case StateGap:
		k.tickGap(dtMs)
	}
}

// tickIdle starts an element if a paddle is down. A squeeze initiated from
// rest always begins with a dit.
func (k *Keyer) tickIdle() {
	switch classifyCombo(k.ditPressed, k.dahPressed) {
	case ComboDitOnly, ComboBoth:
		k.startElement(Dit)
	case ComboDahOnly:
		k.startElement(Dah)
	}
}

func (k *Keyer) tickElement(dtMs float64) {
	k.elementElapsedMs += dtMs
	if k.elementElapsedMs < k.elementTotalMs {
		k.latchMemory()
		return
	}

	k.finishElement()
	k.state = StateGap
	k.gapElapsedMs = 0
	k.gapTotalMs = k.timing.GapMs
}

// latchMemory runs once per tick while an element is on the air. It tracks
// squeeze sightings for the Mode B bonus and, inside the valid window, arms
// the opposite element's latch when the paddle combo and memory mode allow.
func (k *Keyer) latchMemory() {
	if k.elementTotalMs > 0 {
		k.progressPct = 100 * k.elementElapsedMs / k.elementTotalMs
	} else {
		k.progressPct = 0
	}

	combo := classifyCombo(k.ditPressed, k.dahPressed)

	// Squeeze sightings are window-independent.
	if combo == ComboBoth {
		k.squeezeSeen = true
	}

	if k.cfg.MemoryMode == MemoryNone {
		return
	}
	if k.progressPct < k.cfg.MemBlockStartPct || k.progressPct > 100-k.cfg.MemBlockEndPct {
		return
	}

	switch k.state {
	case StateSendDit:
		if (combo == ComboDahOnly || combo == ComboBoth) && k.cfg.MemoryMode.allowsDah() {
			k.dahRequested = true
		}
	case StateSendDah:
		if (combo == ComboDitOnly || combo == ComboBoth) && k.cfg.MemoryMode.allowsDot() {
			k.dotRequested = true
		}
	}
}

// finishElement consumes the memory latches and resolves the Mode B bonus at
// element completion. Enqueue order is an observable contract: memory dit,
// then memory dah, then the bonus.
func (k *Keyer) finishElement() {
	bonus, haveBonus := k.resolveBonus()

	if k.dotRequested {
		k.queue.push(Dit)
		k.dotRequested = false
	}
	if k.dahRequested {
		k.queue.push(Dah)
		k.dahRequested = false
	}
	if haveBonus {
		k.queue.push(bonus)
	}
}

// resolveBonus decides whether an extra opposite element is owed: Mode B
// only, a squeeze must have been seen during this element, and the reference
// combo must show the squeeze since released.
func (k *Keyer) resolveBonus() (Element, bool) {
	if k.cfg.IambicMode != ModeB || !k.squeezeSeen {
		return Dit, false
	}

	ref := k.lastValidCombo
	if k.cfg.SqueezeMode == SqueezeLive {
		ref = classifyCombo(k.ditPressed, k.dahPressed)
	}
	if ref == ComboBoth {
		return Dit, false
	}
	return k.current.Opposite(), true
}

// tickGap waits out the inter-element silence, then decides what to send
// next: the queue head first, otherwise the live paddle combo, where a held
// squeeze alternates away from the element just completed. With nothing to
// send the session returns to idle.
func (k *Keyer) tickGap(dtMs float64) {
	k.gapElapsedMs += dtMs
	if k.gapElapsedMs < k.gapTotalMs {
		return
	}

	if next, ok := k.queue.pop(); ok {
		k.startElement(next)
		return
	}

	switch classifyCombo(k.ditPressed, k.dahPressed) {
	case ComboDitOnly:
		k.startElement(Dit)
	case ComboDahOnly:
		k.startElement(Dah)
	case ComboBoth:
		k.startElement(k.current.Opposite())
	default:
		k.toIdle()
	}
}

// startElement begins sending e, resetting the per-element counters and the
// squeeze sighting. The memory latches deliberately survive an element start:
// they persist until consumed at that element's completion.
func (k *Keyer) startElement(e Element) {
	k.current = e
	k.hasElement = true
	if e == Dit {
		k.state = StateSendDit
		k.elementTotalMs = k.timing.DitMs
	} else {
		k.state = StateSendDah
		k.elementTotalMs = k.timing.DahMs
	}
	k.elementElapsedMs = 0
	k.progressPct = 0
	k.squeezeSeen = false
}

// toIdle is the terminal transition: every transient field is cleared,
// including the queue even though it is already empty by construction here.
func (k *Keyer) toIdle() {
	k.state = StateIdle
	k.current = Dit
	k.hasElement = false
	k.elementElapsedMs = 0
	k.elementTotalMs = 0
	k.gapElapsedMs = 0
	k.gapTotalMs = 0
	k.progressPct = 0
	k.squeezeSeen = false
	k.queue.clear()
}

// State returns the current FSM state.
func (k *Keyer) State() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// CurrentElement returns the element being sent (or, during a gap, the one
// just completed) and whether one is set at all.
func (k *Keyer) CurrentElement() (Element, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current, k.hasElement
}

// Snapshot returns a consistent copy of the observable state.
func (k *Keyer) Snapshot() Snapshot {
	k.mu.Lock()
	defer k.mu.Unlock()
	return Snapshot{
		State:              k.state,
		KeyDown:            k.state.KeyDown(),
		Element:            k.current,
		HasElement:         k.hasElement,
		ElementProgressPct: k.progressPct,
		QueueDepth:         k.queue.len(),
		DitPressed:         k.ditPressed,
		DahPressed:         k.dahPressed,
	}
}

// DroppedElements returns how many queue pushes were dropped on overflow.
// Nonzero values indicate a timing anomaly, not normal operation.
func (k *Keyer) DroppedElements() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.queue.dropped
}

// Config returns the session's immutable configuration.
func (k *Keyer) Config() Config {
	return k.cfg
}

// Timing returns the session's derived durations.
func (k *Keyer) Timing() Timing {
	return k.timing
}

// Reset returns the session to its freshly-constructed state, including the
// paddle levels and squeeze history. Use it when the host reconfigures
// without rebuilding the Keyer's surroundings.
func (k *Keyer) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.toIdle()
	k.ditPressed = false
	k.dahPressed = false
	k.dotRequested = false
	k.dahRequested = false
	k.lastValidCombo = ComboNone
	k.queue.dropped = 0
}
