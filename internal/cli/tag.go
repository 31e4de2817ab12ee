package cli

import (
	"fmt"

	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Show or change a game's tag",
	Long: `Show or change a game's progress tag.

Tags set here are manual: automatic syncs leave them alone until
'gametracker tag reset' hands the game back to the classifier.

Tags: completed, mastered, in_progress, dropped`,
}

var tagGetCmd = &cobra.Command{
	Use:   "get <appid>",
	Short: "Show a game's tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagGet,
}

var tagSetCmd = &cobra.Command{
	Use:   "set <appid> <tag>",
	Short: "Set a manual tag",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagSet,
}

var tagRemoveCmd = &cobra.Command{
	Use:     "remove <appid>",
	Aliases: []string{"rm"},
	Short:   "Remove a game's tag, moving it to the backlog",
	Args:    cobra.ExactArgs(1),
	RunE:    runTagRemove,
}

var tagResetCmd = &cobra.Command{
	Use:   "reset <appid>",
	Short: "Drop a manual tag and recompute it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagReset,
}

func init() {
	tagCmd.AddCommand(tagGetCmd)
	tagCmd.AddCommand(tagSetCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	tagCmd.AddCommand(tagResetCmd)
}

func runTagGet(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("tag get", err)
	}
	defer closeFn()

	resp := svc.GetTag(cmd.Context(), service.GameRequest{AppID: args[0]})
	if err := resp.Err(); err != nil {
		return trackCLIError("tag get", err)
	}

	out := cmd.OutOrStdout()
	if resp.Tag == nil {
		_, _ = fmt.Fprintf(out, "%s: backlog\n", args[0])
		return nil
	}
	source := "auto"
	if resp.Tag.IsManual {
		source = "manual"
	}
	_, _ = fmt.Fprintf(out, "%s: %s (%s)\n", resp.Tag.AppID, resp.Tag.Tag, source)
	return nil
}

func runTagSet(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("tag set", err)
	}
	defer closeFn()

	resp := svc.SetManualTag(cmd.Context(), service.SetTagRequest{AppID: args[0], Tag: args[1]})
	if err := resp.Err(); err != nil {
		return trackCLIError("tag set", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s tagged %s\n", accentStyle.Render("✓"), resp.Tag.AppID, resp.Tag.Tag)
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("tag remove", err)
	}
	defer closeFn()

	resp := svc.RemoveTag(cmd.Context(), service.GameRequest{AppID: args[0]})
	if err := resp.Err(); err != nil {
		return trackCLIError("tag remove", err)
	}

	if !resp.Removed {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s has no tag\n", args[0])
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s moved to backlog\n", accentStyle.Render("✓"), args[0])
	return nil
}

func runTagReset(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("tag reset", err)
	}
	defer closeFn()

	resp := svc.ResetToAuto(cmd.Context(), service.GameRequest{AppID: args[0]})
	if err := resp.Err(); err != nil {
		return trackCLIError("tag reset", err)
	}
	printSyncGame(cmd.OutOrStdout(), resp)
	return nil
}
