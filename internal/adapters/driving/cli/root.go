// Package cli implements the datimex command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services used by the commands. Set by SetServices before Execute.
var (
	extractionService driving.ExtractionService
	annotationService driving.AnnotationService
	settingsService   driving.SettingsService
	appLogger         = logger.Default()
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "datimex",
	Short: "Find and normalise dates in documents",
	Long: `Datimex scans text for date-like expressions, normalises each one to
YYYY-MM-DD, and records where in the text it was found.

Input can be plain text, files (text, markdown, HTML, email), or an
annotation container in JSON. Results can be printed, written as JSON,
stored for later queries, or served over HTTP and MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			appLogger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services holds what the commands depend on.
type Services struct {
	Extraction  driving.ExtractionService
	Annotations driving.AnnotationService
	Settings    driving.SettingsService
	Logger      *logger.Logger
}

// SetServices wires the services used by every command.
func SetServices(s Services) {
	extractionService = s.Extraction
	annotationService = s.Annotations
	settingsService = s.Settings
	if s.Logger != nil {
		appLogger = s.Logger
	}
}

// SetVersion sets the version reported by the version command and servers.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
