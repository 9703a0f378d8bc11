package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mmgblabel-png/bigharvestfarming/internal/bootstrap"
	"github.com/mmgblabel-png/bigharvestfarming/internal/config"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet(appName, flag.ExitOnError)
	fs.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "save profile")
	_ = fs.Parse(os.Args[1:])

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// stdout is reserved for state documents
	bootstrap.SetupLogger(cfg, os.Stderr)

	app := &App{cfg: cfg, in: os.Stdin, out: os.Stdout}
	registry := NewRegistry(app.Commands()...)

	err = registry.Run(fs.Args())
	switch {
	case err == nil:
	case errors.Is(err, errNoCommand), errors.Is(err, errUnknownCommand):
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		registry.PrintHelp(os.Stderr)
		os.Exit(2)
	default:
		logger.Error("Command failed", "args", fs.Args(), "error", err)
		os.Exit(1)
	}
}
