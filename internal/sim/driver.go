// internal/sim/driver.go
package sim

import (
	"errors"
	"sort"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/cw"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/timeline"
)

// ErrInvalidTickPeriod indicates a non-positive tick period
var ErrInvalidTickPeriod = errors.New("tick period must be positive")

// Result is what a replay produced: the key-line transition log, the keyed
// element sequence, the decoded text and the simulated time covered.
type Result struct {
	Events     []timeline.Event
	Elements   []keyer.Element
	Text       string
	DurationMs float64
}

// Run replays a script against k at the given tick period. Events whose
// time has come are applied before the tick they precede, matching how a
// caller polls hardware between ticks. The keyer is not reset first; pass a
// fresh one for a clean run.
func Run(k *keyer.Keyer, script *Script, tickMs float64) (*Result, error) {
	if tickMs <= 0 {
		return nil, ErrInvalidTickPeriod
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}

	events := make([]PaddleEvent, len(script.Events))
	copy(events, script.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].AtMs < events[j].AtMs
	})

	tm := k.Timing()
	durationMs := script.DurationMs
	if durationMs <= 0 {
		// Enough tail after the last event to key out a full queue of
		// pending elements.
		durationMs = events[len(events)-1].AtMs + float64(keyer.QueueCapacity)*(tm.DahMs+tm.GapMs)
	}

	rec := timeline.NewRecorder()
	next := 0
	now := 0.0
	for now < durationMs {
		for next < len(events) && events[next].AtMs <= now {
			k.UpdatePaddles(events[next].Dit, events[next].Dah)
			next++
		}
		k.Tick(tickMs)
		now += tickMs
		rec.Observe(k.Snapshot(), now)
	}

	text, err := decodeEvents(rec.Events(), tm.DitMs)
	if err != nil {
		return nil, err
	}
	return &Result{
		Events:     rec.Events(),
		Elements:   rec.Elements(),
		Text:       text,
		DurationMs: now,
	}, nil
}

// decodeEvents runs the keyed timeline through the readback decoder,
// converting gaps between key-up and the next key-down into character and
// word boundaries.
func decodeEvents(events []timeline.Event, ditMs float64) (string, error) {
	rb, err := cw.NewReadback(ditMs)
	if err != nil {
		return "", err
	}
	for i := 0; i < len(events); i++ {
		ev := events[i]
		if ev.Kind != timeline.KeyUp {
			continue
		}
		rb.Element(ev.Element)
		for j := i + 1; j < len(events); j++ {
			if events[j].Kind == timeline.KeyDown {
				rb.Gap(events[j].AtMs - ev.AtMs)
				break
			}
		}
	}
	rb.Flush()
	return rb.String(), nil
}
