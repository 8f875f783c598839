package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change settings",
	Long: `Settings are read from the configuration file and from DATIMEX_*
environment variables, which take precedence.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Validates and saves one setting.

Examples:
  datimex settings set extraction.concurrency 4
  datimex settings set storage.backend memory`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings not configured")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	values := settingValues(s)
	rows := make([][]string, 0, len(values))
	for _, key := range settingsService.Keys() {
		rows = append(rows, []string{key, values[key]})
	}
	newPrinter(cmd.OutOrStdout()).Table([]string{"KEY", "VALUE"}, rows, -1)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	newPrinter(cmd.OutOrStdout()).Success(fmt.Sprintf("%s = %s", args[0], args[1]))
	return nil
}

func settingValues(s domain.Settings) map[string]string {
	pattern := s.Pattern
	if pattern == "" {
		pattern = "(built-in)"
	}
	path := s.StoragePath
	if path == "" {
		path = "(default)"
	}
	return map[string]string{
		domain.KeyPattern:        pattern,
		domain.KeyConcurrency:    strconv.Itoa(s.Concurrency),
		domain.KeyServerPort:     strconv.Itoa(s.ServerPort),
		domain.KeyStorageBackend: s.StorageBackend,
		domain.KeyStoragePath:    path,
		domain.KeyVerbose:        strconv.FormatBool(s.Verbose),
	}
}
