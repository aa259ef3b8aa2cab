package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	defaultAddr         = ":8080"
	defaultTickInterval = time.Second
)

type Config struct {
	Addr         string
	Development  bool
	LogFile      string
	TickInterval time.Duration
	Settings     mines.Settings
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"addr":        c.Addr,
		"development": c.Development,
		"log_file":    c.LogFile,
		"tick":        c.TickInterval.String(),
		"settings":    c.Settings.String(),
	}
}

func Addr() string {
	addr, ok := os.LookupEnv("MINES_ADDR")
	if !ok {
		return defaultAddr
	}
	return addr
}

// Development is on when DEVELOPMENT is set to anything but "0".
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func LogFile() string {
	return os.Getenv("MINES_LOG_FILE")
}

func TickInterval() (time.Duration, error) {
	tickStr, ok := os.LookupEnv("MINES_TICK")
	if !ok {
		return defaultTickInterval, nil
	}
	tick, err := time.ParseDuration(tickStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse MINES_TICK: %w", err)
	}
	return tick, nil
}

// Parse reads the launch configuration. Flags default to their env variables;
// the remaining key=value arguments choose the board:
//
//	minesweeper -addr :8000 -preset expert
//	minesweeper width=16 height=16 mine_count=40
//	minesweeper '?width=16&height=16&mine_count=40'
func Parse(name string, args []string, output io.Writer) (*Config, error) {
	tick, err := TickInterval()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	var preset string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Addr, "addr", Addr(), "address to listen on")
	fs.BoolVar(&cfg.Development, "dev", Development(), "development mode: debug logs, any websocket origin")
	fs.StringVar(&cfg.LogFile, "log-file", LogFile(), "also write JSON logs to this rotated file")
	fs.DurationVar(&cfg.TickInterval, "tick", tick, "timer push interval for websocket clients")
	fs.StringVar(&preset, "preset", "beginner", "board preset: beginner, intermediate or expert")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}

	base, ok := mines.Preset(preset)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, preset)
	}

	values, err := ValuesFromArgs(fs.Args())
	if err != nil {
		return nil, err
	}
	cfg.Settings, err = SettingsFromValues(base, values)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
