// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "iu3qez-keyer",
	Short: "Iambic CW keyer with element memory and squeeze handling",
	Long: `A tick-driven iambic keyer engine. It turns paddle input into dit and dah
elements with mode A/B squeeze handling, configurable element memory windows
and classic keyer presets, and reads what it keys back as text.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().IntP("wpm", "w", 20, "keying speed in words per minute")
	rootCmd.PersistentFlags().StringP("mode", "m", "B", "iambic mode (A or B)")
	rootCmd.PersistentFlags().StringP("memory", "M", "both", "element memory (none, dot, dah, both)")
	rootCmd.PersistentFlags().StringP("preset", "p", "", "named keyer preset (overrides mode and memory)")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")

	// Bind flags to viper
	viper.BindPFlag("wpm", rootCmd.PersistentFlags().Lookup("wpm"))
	viper.BindPFlag("iambic_mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("memory_mode", rootCmd.PersistentFlags().Lookup("memory"))
	viper.BindPFlag("preset", rootCmd.PersistentFlags().Lookup("preset"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
