// Package main provides the gametracker-mcp server.
//
// gametracker-mcp exposes tag sync, listings and settings over the Model
// Context Protocol so assistants and launchers can drive the tracker.
//
// Usage:
//
//	gametracker-mcp [flags]
//
// The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout). Logs
// go to stderr and ~/.gametracker/gametracker.log.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/gametracker/internal/config"
	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/mcp"
	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/asteroid-belt/gametracker/internal/telemetry"
	"github.com/asteroid-belt/gametracker/pkg/version"
)

func main() {
	// Handle --version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("gametracker-mcp %s\n", version.Version)
		os.Exit(0)
	}

	// Handle --help flag
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		printHelp()
		os.Exit(0)
	}

	os.Exit(run())
}

func run() int {
	// Setup context with cancellation on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// stdout carries the protocol stream
	paths := config.GetPaths(cfg)
	if err := log.InitWithConsole(paths.Logs, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		return 1
	}
	defer func() { _ = log.Close() }()
	log.SetDebug(cfg.Debug)

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		log.Errorf("Failed to open database: %v", err)
		return 1
	}
	defer func() { _ = database.Close() }()

	tc := telemetry.New(database)
	defer tc.Close()
	tc.TrackAppStarted("mcp", 0)

	svc := service.FromConfig(cfg, database, tc)
	server := mcp.NewServer(svc, tc)
	if err := server.Serve(ctx); err != nil {
		log.Errorf("Server error: %v", err)
		return 1
	}
	return 0
}

func printHelp() {
	help := `gametracker-mcp - MCP server for gametracker

USAGE:
    gametracker-mcp [FLAGS]

FLAGS:
    -h, --help       Print this help message
    -v, --version    Print version information

DESCRIPTION:
    gametracker-mcp is a Model Context Protocol (MCP) server that exposes
    the gametracker library to MCP-compatible clients. It also runs the
    dropped-game sweeper while connected.

    The server communicates via JSON-RPC 2.0 over stdio (stdin/stdout).

CONFIGURATION:
    {
      "mcpServers": {
        "gametracker": {
          "type": "stdio",
          "command": "gametracker-mcp"
        }
      }
    }

TOOLS PROVIDED:
    gametracker_get_tag             Get a game's tag
    gametracker_set_tag             Set a manual tag
    gametracker_remove_tag          Remove a tag
    gametracker_reset_tag           Recompute a tag, dropping manual overrides
    gametracker_sync_game           Sync one game
    gametracker_sync_library        Sync many games
    gametracker_get_sync_progress   Progress of the running library sync
    gametracker_check_dropped       Tag idle games as dropped
    gametracker_refresh_cache       Clear cached completion times
    gametracker_get_game_details    Stats, tag and completion time
    gametracker_get_statistics      Games per tag
    gametracker_list_tagged         Tagged games
    gametracker_list_backlog        Untagged games
    gametracker_list_games          Local library
    gametracker_get_settings        Current settings
    gametracker_update_settings     Change settings

RESOURCES PROVIDED:
    gametracker://game/{appid}      Game details as JSON
    gametracker://statistics        Tag statistics as JSON
`
	fmt.Print(help)
}
