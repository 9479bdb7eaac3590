// cmd/play.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/config"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/sim"
)

var playShowTimeline bool

var playCmd = &cobra.Command{
	Use:   "play <script.yaml>",
	Short: "Replay a paddle script and print what it keys",
	Long: `Replays a YAML paddle script (time-ordered dit/dah level changes)
against the configured keyer and prints the keyed element sequence and
the decoded text.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&playShowTimeline, "timeline", "t", false, "print the key-line transition log")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
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

	script, err := sim.LoadScript(args[0])
	if err != nil {
		return err
	}

	res, err := sim.Run(k, script, settings.TickMs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if script.Title != "" {
		fmt.Fprintf(out, "# %s\n", script.Title)
	}
	fmt.Fprintf(out, "elements: %s\n", formatElements(res.Elements))
	fmt.Fprintf(out, "text:     %s\n", res.Text)
	if dropped := k.DroppedElements(); dropped > 0 {
		fmt.Fprintf(out, "dropped:  %d\n", dropped)
	}
	if settings.Debug {
		tm := k.Timing()
		fmt.Fprintf(out, "timing:   dit %.1f ms, dah %.1f ms, gap %.1f ms (effective %.1f wpm)\n",
			tm.DitMs, tm.DahMs, tm.GapMs, tm.EffectiveWPM())
	}
	if playShowTimeline {
		for _, ev := range res.Events {
			fmt.Fprintf(out, "%9.1f ms  %-8s %s\n", ev.AtMs, ev.Kind, ev.Element)
		}
	}
	return nil
}

func formatElements(elems []keyer.Element) string {
	var b strings.Builder
	for _, e := range elems {
		if e == keyer.Dit {
			b.WriteByte('.')
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
