// gametracker tracks progress across a Steam library.
//
// It reads playtime and achievements from the local Steam install, caches
// HowLongToBeat completion times and tags games as completed, mastered,
// in_progress or dropped.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/gametracker/internal/cli"
	"github.com/asteroid-belt/gametracker/internal/config"
	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and open database for persistent tracking ID
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)
	if err := log.InitWithConsole(paths.Logs, os.Stderr); err == nil {
		defer func() { _ = log.Close() }()
	}
	log.SetDebug(cfg.Debug)

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		os.Exit(1)
	}

	// Use persistent tracking ID from database
	telemetryClient := telemetry.New(database)

	err = cli.Execute(ctx, telemetryClient)
	telemetryClient.Close()
	_ = database.Close()
	if err != nil {
		os.Exit(1)
	}
}
