package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change tracker settings",
	Long: `Show all settings, or change one with 'gametracker settings set'.

Settings:
  auto_tag_enabled       Classify games automatically during sync (bool)
  in_progress_threshold  Minutes of playtime before a game is in progress
  mastered_multiplier    Stored for compatibility, not used by the classifier
  cache_ttl              Seconds before a completion time is reported stale
  source_installed       Include installed Steam games (bool)
  source_non_steam       Include non-Steam shortcuts (bool)`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("settings", err)
	}
	defer closeFn()

	resp := svc.GetSettings(cmd.Context())
	if err := resp.Err(); err != nil {
		return trackCLIError("settings", err)
	}
	printSettings(cmd, resp.Settings)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return trackCLIError("settings set", err)
	}
	defer closeFn()

	resp := svc.UpdateSettings(cmd.Context(), service.UpdateSettingsRequest{
		Settings: map[string]any{args[0]: parseSettingArg(args[0], args[1])},
	})
	if err := resp.Err(); err != nil {
		return trackCLIError("settings set", err)
	}
	printSettings(cmd, resp.Settings)
	return nil
}

// parseSettingArg reads a command-line value using the type of the
// setting's default. Values that don't parse are passed through as text
// so the service reports the type error.
func parseSettingArg(key, s string) any {
	switch models.DecodeSettingValue(models.DefaultSettings[key]).(type) {
	case bool:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return s
	case float64:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	}
	return models.DecodeSettingValue(s)
}

func printSettings(cmd *cobra.Command, settings map[string]any) {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	for _, k := range keys {
		_, _ = fmt.Fprintf(out, "  %-22s %v\n", k, settings[k])
	}
}
