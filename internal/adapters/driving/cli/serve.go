package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driving/httpapi"
)

var (
	servePort       int
	serveProduction bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long: `Serves the extractor over HTTP.

  GET  /   returns the application metadata
  POST /   annotates a container sent as JSON; query string values are
           passed as runtime parameters (e.g. ?pattern=...)

Without --production the server logs every request at debug level. With
--production it rate limits clients and bounds request time.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from settings, 5000)")
	serveCmd.Flags().BoolVar(&serveProduction, "production", false, "enable rate limiting and request timeouts")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	port, err := resolvePort(servePort)
	if err != nil {
		return err
	}
	if !serveProduction {
		appLogger.SetVerbose(true)
	}

	server := httpapi.NewServer(extractionService, annotationService, appLogger, httpapi.Config{
		Addr:       fmt.Sprintf(":%d", port),
		Production: serveProduction,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://localhost:%d\n", port)
	return server.Run(cmd.Context())
}

// resolvePort returns flag when set, else the configured port.
func resolvePort(flag int) (int, error) {
	if flag < 0 || flag > 65535 {
		return 0, fmt.Errorf("port %d out of range", flag)
	}
	if flag > 0 {
		return flag, nil
	}
	if settingsService == nil {
		return 5000, nil
	}
	s, err := settingsService.Get()
	if err != nil {
		return 0, fmt.Errorf("loading settings: %w", err)
	}
	return s.ServerPort, nil
}
