package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driven/mmif"
	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

var (
	annotateIn      string
	annotateOut     string
	annotatePattern string
	annotatePretty  bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate a container file",
	Long: `Reads an annotation container in JSON, appends a view with the dates
found in its text documents, and writes the container back out.

Use "-" (the default) for standard input or output.`,
	Args: cobra.NoArgs,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateIn, "in", "i", "-", "input container file")
	annotateCmd.Flags().StringVarP(&annotateOut, "out", "o", "-", "output container file")
	annotateCmd.Flags().StringVar(&annotatePattern, "pattern", "", "regular expression used to find dates (default built-in)")
	annotateCmd.Flags().BoolVar(&annotatePretty, "pretty", false, "indent the output")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, _ []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}
	ctx := cmd.Context()

	in := cmd.InOrStdin()
	if annotateIn != "-" {
		f, err := os.Open(annotateIn)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	c, err := mmif.Decode(in)
	if err != nil {
		return fmt.Errorf("reading container: %w", err)
	}

	view, err := extractionService.Annotate(ctx, c, runParameters(annotatePattern, "", ""))
	if err != nil {
		return fmt.Errorf("annotation failed: %w", err)
	}

	if annotationService != nil {
		if err := annotationService.Save(ctx, view); err != nil && !errors.Is(err, domain.ErrNotImplemented) {
			appLogger.Warn("view %s not saved: %v", view.ID, err)
		}
	}

	return writeContainer(cmd.OutOrStdout(), annotateOut, c)
}

func writeContainer(stdout io.Writer, path string, c *domain.Container) error {
	if path == "-" {
		return mmif.Encode(stdout, c, annotatePretty)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := mmif.Encode(f, c, annotatePretty); err != nil {
		f.Close()
		return fmt.Errorf("writing container: %w", err)
	}
	return f.Close()
}
