package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/spf13/cobra"
)

var syncForce bool

// progressInterval is how often a library sync redraws its progress bar.
var progressInterval = 250 * time.Millisecond

var syncCmd = &cobra.Command{
	Use:   "sync [appid]",
	Short: "Sync playtime, achievements and tags",
	Long: `Sync games from the local Steam install.

Without an argument every game from the enabled sources is synced. With an
app id only that game is synced; --force discards a manual tag and
recomputes it.

Examples:
  gametracker sync
  gametracker sync 620
  gametracker sync 620 --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncForce, "force", "f", false, "Recompute the tag even if it was set manually")
}

func runSync(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("sync", err)
	}
	defer closeFn()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		resp := svc.SyncGame(cmd.Context(), service.SyncGameRequest{AppID: args[0], Force: syncForce})
		if err := resp.Err(); err != nil {
			return trackCLIError("sync", err)
		}
		printSyncGame(out, resp)
		return nil
	}

	if syncForce {
		return trackCLIError("sync", fmt.Errorf("invalid flags: --force needs an app id"))
	}

	resp := syncLibraryWithProgress(cmd, svc)
	if err := resp.Err(); err != nil {
		return trackCLIError("sync", err)
	}
	if resp.Message != "" {
		_, _ = fmt.Fprintln(out, resp.Message)
		return nil
	}

	res := resp.LibraryResult
	_, _ = fmt.Fprintf(out, "%s %d of %d games synced, %d new tags\n",
		accentStyle.Render("✓"), res.Synced, res.Total, res.NewTags)
	if res.Errors > 0 {
		_, _ = fmt.Fprintf(out, "%s %d games failed\n", warnStyle.Render("!"), res.Errors)
		for _, e := range res.ErrorSamples {
			_, _ = fmt.Fprintf(out, "    %s: %s\n", e.AppID, e.Error)
		}
	}
	return nil
}

// syncLibraryWithProgress runs the library sync while polling its progress.
func syncLibraryWithProgress(cmd *cobra.Command, svc *service.Service) service.SyncLibraryResponse {
	done := make(chan service.SyncLibraryResponse, 1)
	go func() {
		done <- svc.SyncLibrary(cmd.Context(), service.SyncLibraryRequest{})
	}()

	errOut := cmd.ErrOrStderr()
	bar := NewProgressBar(0, 20)
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case resp := <-done:
			if bar.total > 0 {
				ClearLine(errOut)
			}
			return resp
		case <-ticker.C:
			p := svc.GetSyncProgress(cmd.Context()).Progress
			if !p.Syncing {
				continue
			}
			bar.SetTotal(p.Total)
			bar.Update(p.Current, "Syncing library")
			ClearLine(errOut)
			_, _ = fmt.Fprint(errOut, bar.Render())
		}
	}
}

func printSyncGame(w io.Writer, resp service.SyncGameResponse) {
	tag := "backlog"
	if resp.Tag != nil {
		tag = string(resp.Tag.Tag)
		if resp.Tag.IsManual {
			tag += " (manual)"
		}
	}

	status := "unchanged"
	if resp.TagChanged {
		status = "changed"
	}
	_, _ = fmt.Fprintf(w, "%s %s: %s (%s)\n", accentStyle.Render("✓"), resp.AppID, tag, status)
	if resp.Hidden {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("  hidden from lists"))
	}
}
