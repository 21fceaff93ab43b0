// Command texshare lists and watches the Syphon servers
// and Spout senders published on this machine.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zimwip/texshare"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "texshare",
		Usage:   "inspect Syphon servers and Spout senders",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "log level (debug, info, warn, error)",
			},
		},
		Before: setup,
		After: func(*cli.Context) error {
			_ = texshare.Logger().Sync()
			return nil
		},
		Commands: []*cli.Command{
			listCommand,
			watchCommand,
			infoCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "texshare:", err)
		os.Exit(1)
	}
}

// cfgKey stores the loaded Config in the app metadata.
const cfgKey = "config"

func setup(c *cli.Context) error {
	cfg := texshare.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := texshare.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	texshare.SetLogger(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}
	c.App.Metadata[cfgKey] = cfg

	return nil
}

func configOf(c *cli.Context) texshare.Config {
	if cfg, ok := c.App.Metadata[cfgKey].(texshare.Config); ok {
		return cfg
	}

	return texshare.Defaults()
}

// newLogger logs in color to a terminal and as
// JSON otherwise.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	var cfg zap.Config
	if interactive() {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

func interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
