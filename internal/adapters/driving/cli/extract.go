package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clamsproject/app-datimex-extraction/internal/connectors/filesystem"
	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

var (
	extractPattern string
	extractText    string
	extractAfter   string
	extractBefore  string
	extractJSON    bool
	extractSave    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract dates from text or files",
	Long: `Finds date-like expressions and prints each with its position and
normalised YYYY-MM-DD value.

Input is taken from --text, from the given files and directories, or from
standard input when neither is given. Files are converted to text by type:
plain text, markdown, HTML and email are supported.

Examples:
  datimex extract --text "Meeting on 12/05/2023"
  datimex extract notes/ report.html --json
  cat minutes.txt | datimex extract --save`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractPattern, "pattern", "", "regular expression used to find dates (default built-in)")
	extractCmd.Flags().StringVar(&extractText, "text", "", "text to scan instead of files")
	extractCmd.Flags().StringVar(&extractAfter, "after", "", "drop dates before this YYYY-MM-DD date")
	extractCmd.Flags().StringVar(&extractBefore, "before", "", "drop dates after this YYYY-MM-DD date")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output annotations as JSON")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "store the results for 'datimex annotations'")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}
	ctx := cmd.Context()

	var c *domain.Container
	switch {
	case extractText != "" || len(args) == 0:
		text := extractText
		if text == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		}
		c = &domain.Container{Documents: []domain.Document{{
			ID:       "d1",
			Type:     domain.DocumentTypeText,
			MIMEType: "text/plain",
			Text:     text,
		}}}
	default:
		raws, err := filesystem.LoadPaths(ctx, args...)
		if err != nil {
			return fmt.Errorf("reading files: %w", err)
		}
		c, err = extractionService.LoadDocuments(ctx, raws)
		if err != nil {
			return fmt.Errorf("loading documents: %w", err)
		}
	}

	view, err := extractionService.Annotate(ctx, c, runParameters(extractPattern, extractAfter, extractBefore))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractSave {
		if err := saveView(ctx, view); err != nil {
			return err
		}
	}

	if extractJSON {
		return outputJSON(cmd, view.Annotations)
	}

	p := newPrinter(cmd.OutOrStdout())
	outputAnnotations(p, c, view.Annotations)
	if extractSave {
		p.Success(fmt.Sprintf("Saved view %s", view.ID))
	}
	return nil
}

// runParameters builds runtime parameters from flags, falling back to the
// configured pattern.
func runParameters(pattern, after, before string) domain.Parameters {
	if pattern == "" && settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			pattern = s.Pattern
		}
	}

	params := domain.Parameters{}
	for k, v := range map[string]string{"pattern": pattern, "after": after, "before": before} {
		if v != "" {
			params[k] = v
		}
	}
	return params
}

func saveView(ctx context.Context, view *domain.View) error {
	if annotationService == nil {
		return errors.New("annotation storage not configured")
	}
	if err := annotationService.Save(ctx, view); err != nil {
		return fmt.Errorf("saving view: %w", err)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// outputAnnotations prints one row per annotation. c may be nil when the
// source documents are unknown.
func outputAnnotations(p *printer, c *domain.Container, anns []domain.DateAnnotation) {
	if len(anns) == 0 {
		p.Muted("No dates found.")
		return
	}

	rows := make([][]string, 0, len(anns))
	for i := range anns {
		rows = append(rows, []string{
			documentLabel(c, anns[i].DocumentID),
			strconv.Itoa(anns[i].Start),
			strconv.Itoa(anns[i].End),
			anns[i].Text,
			anns[i].Date,
		})
	}
	p.Table([]string{"DOCUMENT", "START", "END", "TEXT", "DATE"}, rows, 4)
	p.Muted(fmt.Sprintf("%d dates found.", len(anns)))
}

func documentLabel(c *domain.Container, id string) string {
	if c == nil {
		return id
	}
	doc, ok := c.Document(id)
	if !ok || doc.URI == "" {
		return id
	}
	return filepath.Base(filesystem.LocalPath(doc.URI))
}
