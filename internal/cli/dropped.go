package cli

import (
	"fmt"

	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/spf13/cobra"
)

var droppedDays int

var droppedCmd = &cobra.Command{
	Use:   "dropped",
	Short: "Tag long-idle games as dropped",
	Long: `Tag games as dropped when they have not been played for --days days.

Only visible games that are untagged or automatically tagged in_progress
are considered. Manual tags are never touched.`,
	Args: cobra.NoArgs,
	RunE: runDropped,
}

func init() {
	droppedCmd.Flags().IntVarP(&droppedDays, "days", "d", service.DefaultDroppedDays, "Days without play before a game counts as dropped")
}

func runDropped(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("dropped", err)
	}
	defer closeFn()

	resp := svc.CheckDropped(cmd.Context(), service.CheckDroppedRequest{Days: droppedDays})
	if err := resp.Err(); err != nil {
		return trackCLIError("dropped", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", accentStyle.Render("✓"), resp.Message)
	return nil
}
