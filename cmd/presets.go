// cmd/presets.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the named keyer presets",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range keyer.PresetNames() {
		p, err := keyer.ParsePreset(name)
		if err != nil {
			return err
		}
		cfg := p.Config(20)
		fmt.Fprintf(out, "%-18s mode %s, memory %s, squeeze %s, window %g-%g%%\n",
			name, cfg.IambicMode, cfg.MemoryMode, cfg.SqueezeMode,
			cfg.MemBlockStartPct, 100-cfg.MemBlockEndPct)
	}
	return nil
}
