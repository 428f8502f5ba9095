package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	ModeAuto   = "auto"
	ModeEditor = "editor"
	ModeGUI    = "gui"
)

// Config holds the configuration for the simulator
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	Rule                string        `json:"rule"`
	Seed                int64         `json:"seed"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	UseParallel         bool          `json:"use_parallel"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	MaxGenerations      int           `json:"max_generations"`
	InjectionCount      int           `json:"injection_count"`
	Interactive         bool          `json:"interactive"`
	PatternDir          string        `json:"pattern_dir"`

	// set from the command line only
	Mode        string `json:"-"`
	PatternPath string `json:"-"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		FrameRate:           150 * time.Millisecond,
		Rule:                "conways-life",
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseParallel:         true,
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		InjectionCount:      3,
		Interactive:         false,
		PatternDir:          "saved",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}
	return config, nil
}

// Validate rejects settings the board cannot run with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("grid size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FrameRate < 0 {
		return errors.Errorf("frame_rate must not be negative, got %v", c.FrameRate)
	}
	switch c.Mode {
	case "", ModeAuto, ModeEditor, ModeGUI:
	default:
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	return nil
}

// Bind attaches command-line overrides for the configuration to fs
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Mode, "mode", c.Mode, "driver to run: auto, editor or gui (default from config: editor when interactive)")
	fs.StringVar(&c.Rule, "rule", c.Rule, "preset name or B.../S... rulestring")
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 seeds from the clock")
	fs.StringVar(&c.PatternPath, "load", c.PatternPath, "pattern file to load at start")
	fs.StringVar(&c.PatternDir, "patterns", c.PatternDir, "directory for saved patterns")
}

// ResolvedMode returns the driver to run
func (c Config) ResolvedMode() string {
	if c.Mode != "" {
		return c.Mode
	}
	if c.Interactive {
		return ModeEditor
	}
	return ModeAuto
}
