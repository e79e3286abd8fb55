package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	config.Flags(fs)
	fs.Usage = cli.PrintHelp
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		ui.Fail(err.Error())
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(2)
	}

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	// The TUI owns the terminal; without a log file its logs are dropped.
	var fallback io.Writer = os.Stderr
	if args[0] == "tui" {
		fallback = nil
	}
	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}, fallback)
	if err != nil {
		ui.Fail("log: " + err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, args, cli.Options{Config: cfg, Logger: logger})
	stop()
	if err := closeLog(); err != nil {
		ui.Fail("log: " + err.Error())
	}
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
