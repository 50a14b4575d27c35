package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	cfgFile := flag.String("config", "", "config file (TOML)")
	storeName := flag.String("store", "", "store backend: file, sqlite or memory")
	dataDir := flag.String("data-dir", "", "directory holding the list")
	theme := flag.String("theme", "", "theme: classic, neon or mono")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	groupPending := flag.Bool("group", false, "group ls output by pending/done")
	ephemeral := flag.Bool("ephemeral", false, "keep the list in memory only")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	cfg, err := config.Load(config.Overrides{
		ConfigFile: *cfgFile,
		Store:      *storeName,
		DataDir:    *dataDir,
		Theme:      *theme,
		LogLevel:   *logLevel,
	})
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}
	if *ephemeral {
		cfg.Store = store.BackendMemory
	}
	ui.SetTheme(cfg.Theme)
	logger := logging.New(os.Stderr, cfg.LogLevel)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		if !isTTY() {
			cli.PrintHelp(os.Stderr)
			os.Exit(2)
		}
		args = []string{"ui"}
	}

	code := cli.Run(args, cli.Options{
		Group:  *groupPending,
		Config: cfg,
		Logger: logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
