package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached completion times",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget cached completion times so the next sync refetches them",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("cache clear", err)
	}
	defer closeFn()

	resp := svc.RefreshCompletionCache(cmd.Context())
	if err := resp.Err(); err != nil {
		return trackCLIError("cache clear", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared %d entries. %s\n", accentStyle.Render("✓"), resp.Cleared, resp.Message)
	return nil
}
