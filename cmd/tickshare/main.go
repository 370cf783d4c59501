package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"tickshare/internal/demo"
	"tickshare/internal/logger"
	"tickshare/internal/sched"
)

var mainLog = logger.New("tickshare")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		mainLog.Errorln("error running tickshare:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tickshare",
		Usage: "increment one shared counter from the main goroutine and a background ticker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   sched.DefaultConfigPath,
				Usage:   "YAML config file (overridden by $CONFIG_FILE)",
			},
			&cli.IntFlag{Name: "max-ticks", Usage: "number of ticker increments"},
			&cli.IntFlag{Name: "threshold", Usage: "main loop stops once it observes this count"},
			&cli.DurationFlag{Name: "tick", Usage: "ticker sleep after each increment"},
			&cli.DurationFlag{Name: "main-interval", Usage: "main loop sleep after each increment"},
			&cli.StringFlag{Name: "trace", Usage: "write every increment to this CSV file"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug log (overrides log_level)"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := getConfig(c)
	if err != nil {
		return err
	}
	if c.Bool("debug") {
		cfg.LogLevel = "debug"
	}
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	mainLog.Debugf("loaded config: %+v", cfg)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = demo.Run(ctx, cfg, c.App.Writer)
	return err
}

// getConfig loads the config file and applies command line overrides on top.
func getConfig(c *cli.Context) (sched.Config, error) {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = c.String("config")
	}
	cfg, err := sched.Load(configFile)
	if err != nil {
		return cfg, err
	}

	if c.IsSet("max-ticks") {
		cfg.MaxTicks = c.Int("max-ticks")
	}
	if c.IsSet("threshold") {
		cfg.Threshold = c.Int("threshold")
	}
	if c.IsSet("tick") {
		if cfg.TickMS, err = millis(c, "tick"); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("main-interval") {
		if cfg.MainMS, err = millis(c, "main-interval"); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("trace") {
		cfg.TraceCSV = c.String("trace")
	}
	return cfg, cfg.Validate()
}

// millis converts a duration flag to whole milliseconds, the config's unit.
func millis(c *cli.Context, name string) (int, error) {
	d := c.Duration(name)
	if d%time.Millisecond != 0 {
		return 0, fmt.Errorf("--%s %s: must be a whole number of milliseconds", name, d)
	}
	return int(d / time.Millisecond), nil
}
