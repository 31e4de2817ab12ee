package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the dropped-game sweeper until interrupted",
	Long: `Run the background dropped-game sweeper in the foreground.

The first sweep happens after GAMETRACKER_SWEEP_INITIAL_DELAY, then every
GAMETRACKER_SWEEP_INTERVAL. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("sweep", err)
	}
	defer closeFn()

	ctx := cmd.Context()
	svc.StartSweeper(ctx)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Sweeper running. Press Ctrl+C to stop.")

	<-ctx.Done()
	svc.StopSweeper()
	return nil
}
