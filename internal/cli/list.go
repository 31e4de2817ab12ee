package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/spf13/cobra"
)

var (
	listBacklog bool
	listAll     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tagged games",
	Long: `List games grouped by tag.

By default tagged games are listed in tag order (completed, mastered,
in_progress, dropped). --backlog lists synced games without a tag and
--all lists every game the enabled sources know about.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listBacklog, "backlog", "b", false, "List untagged games")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "List every game in the local library")
	listCmd.MarkFlagsMutuallyExclusive("backlog", "all")
}

func runList(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("list", err)
	}
	defer closeFn()

	out := cmd.OutOrStdout()

	switch {
	case listAll:
		resp := svc.ListAllGames(cmd.Context())
		if err := resp.Err(); err != nil {
			return trackCLIError("list", err)
		}
		printLibrary(out, resp.Games)
	case listBacklog:
		resp := svc.ListBacklog(cmd.Context())
		if err := resp.Err(); err != nil {
			return trackCLIError("list", err)
		}
		printTagged(out, "BACKLOG", resp.Games)
	default:
		resp := svc.ListTaggedGames(cmd.Context())
		if err := resp.Err(); err != nil {
			return trackCLIError("list", err)
		}
		printTagged(out, "TAGGED", resp.Games)
	}
	return nil
}

func printTagged(w io.Writer, title string, games []models.TaggedGame) {
	if len(games) == 0 {
		_, _ = fmt.Fprintln(w, "No games.")
		_, _ = fmt.Fprintln(w, "\nUse 'gametracker sync' to read your library.")
		return
	}

	_, _ = fmt.Fprintf(w, "%s (%d games)\n", title, len(games))
	_, _ = fmt.Fprintln(w, "──────────────────────────────────────────────────")

	var current models.Tag = "-"
	for _, g := range games {
		if g.Tag != current && g.Tag != models.TagBacklog {
			current = g.Tag
			_, _ = fmt.Fprintf(w, "\n%s\n", accentStyle.Render(string(current)))
		}
		manual := ""
		if g.IsManual {
			manual = mutedStyle.Render(" (manual)")
		}
		_, _ = fmt.Fprintf(w, "  %-10s %s%s\n", g.AppID, g.GameName, manual)
	}
}

func printLibrary(w io.Writer, games []models.GameSummary) {
	if len(games) == 0 {
		_, _ = fmt.Fprintln(w, "No games found in library.")
		return
	}

	_, _ = fmt.Fprintf(w, "LIBRARY (%d games)\n", len(games))
	_, _ = fmt.Fprintln(w, "──────────────────────────────────────────────────")
	for _, g := range games {
		kind := ""
		if g.IsExternal {
			kind = mutedStyle.Render(" [non-Steam]")
		}
		_, _ = fmt.Fprintf(w, "  %-12s %-40s %s%s\n", g.AppID, g.Name, formatPlaytime(g.PlaytimeMinutes), kind)
	}
}

// formatPlaytime renders minutes as "12h 5m".
func formatPlaytime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// formatTimeSince formats a duration since a time in a human-readable way.
func formatTimeSince(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
