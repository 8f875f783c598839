package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var metadataPretty bool

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Print the application metadata",
	Long: `Prints the application metadata as JSON: the document types it reads,
the annotation types it produces, and its runtime parameters.`,
	Args: cobra.NoArgs,
	RunE: runMetadata,
}

func init() {
	metadataCmd.Flags().BoolVar(&metadataPretty, "pretty", false, "indent the output")
	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(cmd *cobra.Command, _ []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	var (
		data []byte
		err  error
	)
	m := extractionService.Metadata()
	if metadataPretty {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = json.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
