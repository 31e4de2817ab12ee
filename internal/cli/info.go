package cli

import (
	"fmt"
	"time"

	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <appid>",
	Short: "Show everything stored about a game",
	Long: `Display stats, tag and cached completion time for a game.

Games that were never synced are read from the local Steam install; nothing
is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("info", err)
	}
	defer closeFn()

	resp := svc.GetGameDetails(cmd.Context(), service.GameRequest{AppID: args[0]})
	if err := resp.Err(); err != nil {
		return trackCLIError("info", err)
	}
	if resp.Stats == nil && resp.Tag == nil {
		return trackCLIError("info", fmt.Errorf("game '%s' not found", args[0]))
	}

	out := cmd.OutOrStdout()
	now := time.Now()

	if st := resp.Stats; st != nil {
		_, _ = fmt.Fprintf(out, "Game: %s\n", st.GameName)
		_, _ = fmt.Fprintf(out, "App ID: %s\n", st.AppID)
		_, _ = fmt.Fprintf(out, "Playtime: %s\n", formatPlaytime(st.PlaytimeMinutes))
		if st.TotalAchievements > 0 {
			_, _ = fmt.Fprintf(out, "Achievements: %d/%d (%.1f%%)\n",
				st.UnlockedAchievements, st.TotalAchievements, st.AchievementPercentage)
		}
		if last := st.LastPlayed(); last > 0 {
			_, _ = fmt.Fprintf(out, "Last played: %s\n", formatTimeSince(time.Unix(last, 0), now))
		}
		if st.IsHidden {
			_, _ = fmt.Fprintln(out, "Hidden: true")
		}
	} else {
		_, _ = fmt.Fprintf(out, "App ID: %s\n", resp.AppID)
	}

	tag := "backlog"
	if resp.Tag != nil {
		tag = string(resp.Tag.Tag)
		if resp.Tag.IsManual {
			tag += " (manual)"
		}
	}
	_, _ = fmt.Fprintf(out, "\nTag: %s\n", tag)

	if ct := resp.CompletionTime; ct != nil {
		_, _ = fmt.Fprintf(out, "\nHowLongToBeat: %s\n", ct.MatchedName)
		if ct.HasMainStory() {
			_, _ = fmt.Fprintf(out, "  Main story: %.1fh\n", *ct.MainStory)
		}
		if ct.MainExtra != nil {
			_, _ = fmt.Fprintf(out, "  Main + extra: %.1fh\n", *ct.MainExtra)
		}
		if ct.Completionist != nil {
			_, _ = fmt.Fprintf(out, "  Completionist: %.1fh\n", *ct.Completionist)
		}
		cached := "Cached " + formatTimeSince(ct.CachedAt, now)
		if resp.CacheStale {
			cached += " (stale)"
		}
		_, _ = fmt.Fprintln(out, mutedStyle.Render("  "+cached))
	}

	return nil
}
