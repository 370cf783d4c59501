package sched

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	yaml "github.com/goccy/go-yaml"
	"github.com/mitchellh/go-homedir"
)

// DefaultConfigPath is where Load looks when no file is given on the command line.
const DefaultConfigPath = "~/.tickshare.yml"

// Config mirrors the YAML config file.
type Config struct {
	TickMS    int    `yaml:"tick_ms" validate:"min=1"`   // 1000 (by default)
	MainMS    int    `yaml:"main_ms" validate:"min=1"`   // 2000 (by default)
	MaxTicks  int    `yaml:"max_ticks" validate:"min=0"` // 5 (by default)
	Threshold int    `yaml:"threshold" validate:"min=0"` // 10 (by default)
	TraceCSV  string `yaml:"trace_csv"`                  // empty = no trace
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warning error"`
}

// DefaultConfig is used for every key the config file leaves out.
func DefaultConfig() Config {
	return Config{
		TickMS:    1000,
		MainMS:    2000,
		MaxTicks:  5,
		Threshold: 10,
		LogLevel:  "info",
	}
}

// Load reads YAML and overrides defaults. An empty path or a missing file means
// defaults only; a file that exists but cannot be parsed or validated is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot expand config path: %w", err)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first field that is out of range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TickInterval is how long the ticker sleeps after each increment.
func (c Config) TickInterval() time.Duration { return time.Duration(c.TickMS) * time.Millisecond }

// MainInterval is how long the foreground loop sleeps after each increment.
func (c Config) MainInterval() time.Duration { return time.Duration(c.MainMS) * time.Millisecond }
