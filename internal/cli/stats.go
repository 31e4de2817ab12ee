package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many games carry each tag",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("stats", err)
	}
	defer closeFn()

	resp := svc.GetTagStatistics(cmd.Context())
	if err := resp.Err(); err != nil {
		return trackCLIError("stats", err)
	}
	st := resp.Stats

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "LIBRARY (%d games)\n", st.Total)
	_, _ = fmt.Fprintln(out, "──────────────────────────────")
	rows := []struct {
		label string
		count int
	}{
		{"Completed", st.Completed},
		{"Mastered", st.Mastered},
		{"In progress", st.InProgress},
		{"Dropped", st.Dropped},
		{"Backlog", st.Backlog},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(out, "  %-12s %s\n", r.label, accentStyle.Render(fmt.Sprint(r.count)))
	}

	if p := svc.GetSyncProgress(cmd.Context()).Progress; p.Syncing {
		_, _ = fmt.Fprintf(out, "\n%s sync running: %d/%d\n", warnStyle.Render("!"), p.Current, p.Total)
	}
	return nil
}
