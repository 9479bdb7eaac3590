// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/iu3qez/IU3QEZ-Keyer/internal/keyer"
)

const (
	AppName       = "iu3qez-keyer"
	ConfigType    = "yaml"
	DefaultConfig = `# IU3QEZ Keyer Configuration

# Timing
wpm: 20                 # Keying speed in words per minute (PARIS)
tick_ms: 1              # Tick period for the keyer loop in milliseconds
timing_l: 30            # Dah weight, dah = dit * (L/10); 30 = standard 3:1
timing_s: 50            # Gap weight, gap = dit * (S/50); 50 = standard 1 dit
timing_p: 50            # Dit weight, dit = (1200/wpm) * (P/50); 50 = standard

# Keyer behaviour
iambic_mode: "B"        # "A" (no completion bonus) or "B" (squeeze completion)
memory_mode: "both"     # "none", "dot", "dah" or "both"
squeeze_mode: "snapshot" # "snapshot" (combo before last change) or "live"
mem_block_start_pct: 0  # Percent of the element where latching is blocked at the start
mem_block_end_pct: 0    # Percent of the element where latching is blocked at the end
preset: ""              # Named preset ("superkeyer", "accukeyer", "curtis-a",
                        # "no-memory", ...); overrides the keyer settings above

# Output
debug: false            # Enable debug output
`
)

// Settings holds all application configuration
type Settings struct {
	// Timing
	WPM     int     `mapstructure:"wpm"`
	TickMs  float64 `mapstructure:"tick_ms"`
	TimingL int     `mapstructure:"timing_l"`
	TimingS int     `mapstructure:"timing_s"`
	TimingP int     `mapstructure:"timing_p"`

	// Keyer behaviour
	IambicMode       string  `mapstructure:"iambic_mode"`
	MemoryMode       string  `mapstructure:"memory_mode"`
	SqueezeMode      string  `mapstructure:"squeeze_mode"`
	MemBlockStartPct float64 `mapstructure:"mem_block_start_pct"`
	MemBlockEndPct   float64 `mapstructure:"mem_block_end_pct"`
	Preset           string  `mapstructure:"preset"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/iu3qez-keyer/
func Init() error {
	// Set defaults
	viper.SetDefault("wpm", 20)
	viper.SetDefault("tick_ms", 1.0)
	viper.SetDefault("timing_l", keyer.DefaultTimingL)
	viper.SetDefault("timing_s", keyer.DefaultTimingS)
	viper.SetDefault("timing_p", keyer.DefaultTimingP)
	viper.SetDefault("iambic_mode", "B")
	viper.SetDefault("memory_mode", "both")
	viper.SetDefault("squeeze_mode", "snapshot")
	viper.SetDefault("mem_block_start_pct", 0.0)
	viper.SetDefault("mem_block_end_pct", 0.0)
	viper.SetDefault("preset", "")
	viper.SetDefault("debug", false)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/iu3qez-keyer/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Timing
	if s.WPM < 5 || s.WPM > 99 {
		errs = append(errs, fmt.Errorf("wpm must be between 5 and 99, got %d", s.WPM))
	}
	if s.TickMs <= 0 || s.TickMs > 100 {
		errs = append(errs, fmt.Errorf("tick_ms must be between 0 (exclusive) and 100, got %v", s.TickMs))
	}
	if s.TimingL < 10 || s.TimingL > 90 {
		errs = append(errs, fmt.Errorf("timing_l must be between 10 and 90, got %d", s.TimingL))
	}
	if s.TimingS < 0 || s.TimingS > 99 {
		errs = append(errs, fmt.Errorf("timing_s must be between 0 and 99, got %d", s.TimingS))
	}
	if s.TimingP < 10 || s.TimingP > 99 {
		errs = append(errs, fmt.Errorf("timing_p must be between 10 and 99, got %d", s.TimingP))
	}

	// Keyer behaviour
	if _, err := keyer.ParseIambicMode(s.IambicMode); err != nil {
		errs = append(errs, fmt.Errorf("iambic_mode: %w", err))
	}
	if _, err := keyer.ParseMemoryMode(s.MemoryMode); err != nil {
		errs = append(errs, fmt.Errorf("memory_mode: %w", err))
	}
	if _, err := keyer.ParseSqueezeMode(s.SqueezeMode); err != nil {
		errs = append(errs, fmt.Errorf("squeeze_mode: %w", err))
	}
	if s.MemBlockStartPct < 0 || s.MemBlockStartPct > 100 {
		errs = append(errs, fmt.Errorf("mem_block_start_pct must be between 0 and 100, got %v", s.MemBlockStartPct))
	}
	if s.MemBlockEndPct < 0 || s.MemBlockEndPct > 100 {
		errs = append(errs, fmt.Errorf("mem_block_end_pct must be between 0 and 100, got %v", s.MemBlockEndPct))
	}
	if s.MemBlockStartPct+s.MemBlockEndPct >= 100 {
		errs = append(errs, fmt.Errorf("mem_block_start_pct and mem_block_end_pct leave no latch window, got %v and %v", s.MemBlockStartPct, s.MemBlockEndPct))
	}
	if s.Preset != "" {
		if _, err := keyer.ParsePreset(s.Preset); err != nil {
			errs = append(errs, fmt.Errorf("preset: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// KeyerConfig maps the settings onto a keyer configuration. A named preset
// takes over everything but the speed.
func (s *Settings) KeyerConfig() (keyer.Config, error) {
	if err := s.Validate(); err != nil {
		return keyer.Config{}, err
	}

	if s.Preset != "" {
		p, err := keyer.ParsePreset(s.Preset)
		if err != nil {
			return keyer.Config{}, err
		}
		return p.Config(s.WPM), nil
	}

	im, err := keyer.ParseIambicMode(s.IambicMode)
	if err != nil {
		return keyer.Config{}, err
	}
	mm, err := keyer.ParseMemoryMode(s.MemoryMode)
	if err != nil {
		return keyer.Config{}, err
	}
	sm, err := keyer.ParseSqueezeMode(s.SqueezeMode)
	if err != nil {
		return keyer.Config{}, err
	}

	cfg := keyer.Config{
		WPM:              s.WPM,
		IambicMode:       im,
		MemoryMode:       mm,
		SqueezeMode:      sm,
		MemBlockStartPct: s.MemBlockStartPct,
		MemBlockEndPct:   s.MemBlockEndPct,
		TimingL:          s.TimingL,
		TimingS:          s.TimingS,
		TimingP:          s.TimingP,
	}
	if err := cfg.Validate(); err != nil {
		return keyer.Config{}, err
	}
	return cfg, nil
}
