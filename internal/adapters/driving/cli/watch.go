package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clamsproject/app-datimex-extraction/internal/connectors/filesystem"
	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

var (
	watchPattern string
	watchSave    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Extract dates from files as they change",
	Long: `Extracts dates from every file below a directory, then keeps watching
it and extracts again whenever a file is created or modified. Press Ctrl+C
to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "regular expression used to find dates (default built-in)")
	watchCmd.Flags().BoolVar(&watchSave, "save", false, "store each result for 'datimex annotations'")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}
	ctx := cmd.Context()
	p := newPrinter(cmd.OutOrStdout())

	conn := filesystem.New(args[0], filesystem.WithLogger(appLogger))
	defer conn.Close()

	raws, err := conn.Load(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	for _, raw := range raws {
		if err := extractRaw(ctx, p, raw); err != nil {
			return err
		}
	}

	changes, err := conn.Watch(ctx)
	if err != nil {
		return err
	}
	p.Muted(fmt.Sprintf("Watching %s", conn.RootPath()))

	for change := range changes {
		if change.Type == domain.ChangeDeleted {
			appLogger.Debug("removed %s", change.Document.URI)
			continue
		}
		if err := extractRaw(ctx, p, change.Document); err != nil {
			return err
		}
	}
	return nil
}

// extractRaw annotates one file and prints its dates. Files that cannot be
// converted to text, or that yield no text documents, are skipped.
func extractRaw(ctx context.Context, p *printer, raw domain.RawDocument) error {
	c, err := extractionService.LoadDocuments(ctx, []domain.RawDocument{raw})
	if errors.Is(err, domain.ErrUnsupportedType) {
		appLogger.Warn("skipping %s: %v", raw.URI, err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", raw.URI, err)
	}

	view, err := extractionService.Annotate(ctx, c, runParameters(watchPattern, "", ""))
	switch {
	case errors.Is(err, domain.ErrNoInputDocuments):
		appLogger.Debug("no text in %s", raw.URI)
		return nil
	case err != nil:
		return fmt.Errorf("extraction failed for %s: %w", raw.URI, err)
	}

	if watchSave {
		if err := saveView(ctx, view); err != nil {
			return err
		}
	}

	p.Title(filepath.Base(filesystem.LocalPath(raw.URI)))
	outputAnnotations(p, c, view.Annotations)
	return nil
}
