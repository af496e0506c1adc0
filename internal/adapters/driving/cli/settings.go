package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// Setting names accepted by "settings set".
const (
	settingWindowStart = "window_start"
	settingWindowEnd   = "window_end"
	settingSessionGap  = "session_gap"
	settingLanguage    = "language"
	settingDataDir     = "data_dir"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the extraction window, the session gap, the display
language and where donations are stored.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change a setting",
	Long: `Change a setting.

Settings:
  window_start  first timestamp included in extracted tables (YYYY-MM-DD [HH:MM:SS])
  window_end    last timestamp included in extracted tables (YYYY-MM-DD [HH:MM:SS])
  session_gap   idle time that ends a usage session (e.g. 30m, 1h or minutes)
  language      display language, en or nl
  data_dir      directory of the donation database (empty for the default)`,
	Example: `  donate settings set window_start 2022-01-01
  donate settings set session_gap 45m`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Setting", "Value"})
	tw.AppendRows([]table.Row{
		{settingWindowStart, settings.Window.Start.Format(domain.TimestampLayout)},
		{settingWindowEnd, settings.Window.End.Format(domain.TimestampLayout)},
		{settingSessionGap, formatGap(settings.SessionGap)},
		{settingLanguage, settings.Language},
		{settingDataDir, dataDir},
	})
	tw.Render()
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	name, value := args[0], strings.TrimSpace(args[1])

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	switch name {
	case settingWindowStart:
		if settings.Window.Start, err = parseSettingTime(value); err != nil {
			return err
		}
	case settingWindowEnd:
		if settings.Window.End, err = parseSettingTime(value); err != nil {
			return err
		}
	case settingSessionGap:
		if settings.SessionGap, err = parseGap(value); err != nil {
			return err
		}
	case settingLanguage:
		settings.Language = strings.ToLower(value)
	case settingDataDir:
		settings.DataDir = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, name)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s\n", name)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings reset to defaults")
	return nil
}

// parseSettingTime accepts a full timestamp or a date.
func parseSettingTime(s string) (time.Time, error) {
	if t, err := domain.ParseTimestamp(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date (YYYY-MM-DD [HH:MM:SS])", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// parseGap accepts a Go duration or a number of minutes.
func parseGap(s string) (time.Duration, error) {
	if m, err := strconv.Atoi(s); err == nil {
		return time.Duration(m) * time.Minute, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a duration", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func formatGap(d time.Duration) string {
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
