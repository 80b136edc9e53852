package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fortyozsucka/college-football-picks/internal/app"
	"github.com/fortyozsucka/college-football-picks/internal/config"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd, err := parseCommand(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr)
		return exitUsage
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	// Logs go to stderr so stdout stays a clean JSON document.
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Output: os.Stderr}).Named("scoring-cli").With("command", cmd.name)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := app.NewServices(ctx, cfg, logger)
	if err != nil {
		logger.Error("build services failed", "error", err)
		return exitFailure
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn("close storage failed", "error", err)
		}
	}()

	if err := cmd.execute(ctx, services, os.Stdout); err != nil {
		logger.Error("command failed", "error", err)
		return exitFailure
	}
	return exitOK
}
