// Package cli provides the command-line interface for gametracker.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/asteroid-belt/gametracker/internal/config"
	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/asteroid-belt/gametracker/internal/tagging"
	"github.com/asteroid-belt/gametracker/internal/telemetry"
	"github.com/asteroid-belt/gametracker/pkg/version"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var telemetryClient telemetry.Client

var commandStartTime time.Time

// openService is swapped out in tests.
var openService = openConfiguredService

var rootCmd = &cobra.Command{
	Use:   "gametracker",
	Short: "Track progress across your Steam library",
	Long: `Track progress across your Steam library

Reads playtime and achievements from the local Steam install, looks up
completion times on HowLongToBeat and tags every game as completed,
mastered, in_progress or dropped. Untagged games are your backlog.

Telemetry:
  Telemetry is enabled by default, always anonymous, and never includes
  game names, library contents or IP addresses.

  Opt-out with:
  	GAMETRACKER_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		durationMs := time.Since(commandStartTime).Milliseconds()
		hasFlags := cmd.Flags().NFlag() > 0
		telemetryClient.TrackCLICommandExecuted(cmd.CommandPath(), hasFlags, durationMs)

		// Track help viewed if --help was used
		if cmd.Flags().Changed("help") {
			telemetryClient.TrackCLIHelpViewed(cmd.Name(), os.Args[1:])
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(droppedCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(sweepCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.New(nil)
	}
	telemetryClient = tc

	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// openConfiguredService loads the configuration, opens the database and
// wires the service to the local Steam install.
func openConfiguredService() (*service.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	svc := service.FromConfig(cfg, database, telemetryClient)
	return svc, func() { _ = database.Close() }, nil
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	errorType := classifyError(err)
	telemetryClient.TrackCLIError(cmdName, errorType)
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidTag), errors.Is(err, service.ErrInvalidRequest):
		return "validation_error"
	case errors.Is(err, tagging.ErrSyncInProgress):
		return "sync_in_progress"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}

	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "network", "timeout", "connection"):
		return "network_error"
	case containsAny(errStr, "steam", "vdf"):
		return "library_error"
	case containsAny(errStr, "not found", "does not exist"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
