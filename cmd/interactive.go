// cmd/interactive.go
package cmd

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/config"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/cw"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/recovery"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/timeline"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Drive the keyer from the keyboard",
	Long: `Runs the keyer against keyboard paddles in a terminal UI.

Terminals report key presses only, so the paddles are toggles:
  j       toggle the dit paddle
  k       toggle the dah paddle
  space   release both paddles
  r       reset the keyer and clear the decoded text
  q, Esc  quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

type paddleToggle int

const (
	toggleDit paddleToggle = iota
	toggleDah
	releaseBoth
	resetKeyer
	quitSession
)

func runInteractive(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg, err := settings.KeyerConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	k, err := keyer.New(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return interactiveLoop(screen, k, settings.TickMs)
}

// interactiveLoop owns the keyer: paddle toggles arrive over a channel from
// the screen event goroutine, and a ticker advances time.
func interactiveLoop(screen tcell.Screen, k *keyer.Keyer, tickMs float64) error {
	toggles := make(chan paddleToggle, 16)
	go func() {
		defer recovery.HandlePanicFunc(func() { screen.Fini() })
		for {
			ev := screen.PollEvent()
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					toggles <- quitSession
					return
				case ev.Rune() == 'q':
					toggles <- quitSession
					return
				case ev.Rune() == 'j':
					toggles <- toggleDit
				case ev.Rune() == 'k':
					toggles <- toggleDah
				case ev.Rune() == ' ':
					toggles <- releaseBoth
				case ev.Rune() == 'r':
					toggles <- resetKeyer
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	rb, err := cw.NewReadback(k.Timing().DitMs)
	if err != nil {
		return err
	}
	rec := timeline.NewRecorder()

	ticker := time.NewTicker(time.Duration(tickMs * float64(time.Millisecond)))
	defer ticker.Stop()

	var (
		dit, dah  bool
		nowMs     float64
		decodeIdx int
		lastUpMs  float64
		haveUp    bool
	)
	for {
		select {
		case t := <-toggles:
			switch t {
			case toggleDit:
				dit = !dit
			case toggleDah:
				dah = !dah
			case releaseBoth:
				dit, dah = false, false
			case resetKeyer:
				dit, dah = false, false
				k.Reset()
				rb.Reset()
				rec.Reset()
				decodeIdx, haveUp = 0, false
			case quitSession:
				return nil
			}
			k.UpdatePaddles(dit, dah)
		case <-ticker.C:
			k.Tick(tickMs)
			nowMs += tickMs
			snap := k.Snapshot()
			rec.Observe(snap, nowMs)

			events := rec.Events()
			for ; decodeIdx < len(events); decodeIdx++ {
				ev := events[decodeIdx]
				switch ev.Kind {
				case timeline.KeyDown:
					if haveUp {
						rb.Gap(ev.AtMs - lastUpMs)
						haveUp = false
					}
				case timeline.KeyUp:
					rb.Element(ev.Element)
					lastUpMs = ev.AtMs
					haveUp = true
				}
			}
			// An idle pause long enough for a word gap ends the character
			// without waiting for the next key-down.
			if haveUp && nowMs-lastUpMs > cw.WordBoundaryRatio*k.Timing().DitMs {
				rb.Gap(nowMs - lastUpMs)
				haveUp = false
			}

			drawSession(screen, k, snap, rb.String(), dit, dah)
		}
	}
}

func drawSession(screen tcell.Screen, k *keyer.Keyer, snap keyer.Snapshot, text string, dit, dah bool) {
	screen.Clear()
	style := tcell.StyleDefault

	drawText(screen, 0, 0, style.Bold(true), "IU3QEZ keyer")
	drawText(screen, 0, 1, style, fmt.Sprintf("mode %s  memory %s  squeeze %s  %.1f wpm",
		k.Config().IambicMode, k.Config().MemoryMode, k.Config().SqueezeMode,
		k.Timing().EffectiveWPM()))

	drawText(screen, 0, 3, style, fmt.Sprintf("paddles  dit:%s dah:%s", onOff(dit), onOff(dah)))
	status := snap.State.String()
	if snap.HasElement {
		status = fmt.Sprintf("%s %s (%3.0f%%)", snap.State, snap.Element, snap.ElementProgressPct)
	}
	drawText(screen, 0, 4, style, "state    "+status)
	drawText(screen, 0, 5, style, fmt.Sprintf("queued   %d", snap.QueueDepth))

	drawText(screen, 0, 7, style.Bold(true), "decoded  "+text)
	drawText(screen, 0, 9, style.Dim(true), "j/k paddles  space release  r reset  q quit")
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func onOff(pressed bool) string {
	if pressed {
		return "DOWN"
	}
	return "up  "
}
