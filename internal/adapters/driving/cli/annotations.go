package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
)

var (
	annotationsDocument string
	annotationsSince    string
	annotationsLimit    int
	annotationsJSON     bool
)

var annotationsCmd = &cobra.Command{
	Use:   "annotations",
	Short: "Query stored annotations",
	Long:  `Lists and inspects annotation runs saved with --save or by the servers.`,
}

var annotationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored date annotations",
	Long: `Lists stored date annotations, newest run first.

--since accepts most date and time formats, e.g. "2024-03-01",
"March 1, 2024" or "2024-03-01 14:00".`,
	Args: cobra.NoArgs,
	RunE: runAnnotationsList,
}

var annotationsViewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List stored runs",
	Args:  cobra.NoArgs,
	RunE:  runAnnotationsViews,
}

var annotationsGetCmd = &cobra.Command{
	Use:   "get [view-id]",
	Short: "Show one stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationsGet,
}

var annotationsDeleteCmd = &cobra.Command{
	Use:   "delete [view-id]",
	Short: "Delete a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationsDelete,
}

func init() {
	annotationsListCmd.Flags().StringVar(&annotationsDocument, "document", "", "only annotations of this document ID")
	annotationsListCmd.Flags().StringVar(&annotationsSince, "since", "", "only runs at or after this time")
	annotationsListCmd.Flags().IntVar(&annotationsLimit, "limit", 0, "maximum number of results (0 for all)")
	annotationsListCmd.Flags().BoolVar(&annotationsJSON, "json", false, "output as JSON")
	annotationsGetCmd.Flags().BoolVar(&annotationsJSON, "json", false, "output as JSON")

	annotationsCmd.AddCommand(annotationsListCmd)
	annotationsCmd.AddCommand(annotationsViewsCmd)
	annotationsCmd.AddCommand(annotationsGetCmd)
	annotationsCmd.AddCommand(annotationsDeleteCmd)
	rootCmd.AddCommand(annotationsCmd)
}

func runAnnotationsList(cmd *cobra.Command, _ []string) error {
	if annotationService == nil {
		return errors.New("annotation storage not configured")
	}
	if annotationsLimit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", annotationsLimit)
	}

	q := driving.AnnotationQuery{
		DocumentID: annotationsDocument,
		Limit:      annotationsLimit,
	}
	if annotationsSince != "" {
		since, err := dateparse.ParseLocal(annotationsSince)
		if err != nil {
			return fmt.Errorf("invalid --since %q: %w", annotationsSince, err)
		}
		q.Since = since
	}

	anns, err := annotationService.List(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("listing annotations: %w", err)
	}

	if annotationsJSON {
		return outputJSON(cmd, anns)
	}
	outputAnnotations(newPrinter(cmd.OutOrStdout()), nil, anns)
	return nil
}

func runAnnotationsViews(cmd *cobra.Command, _ []string) error {
	if annotationService == nil {
		return errors.New("annotation storage not configured")
	}

	views, err := annotationService.ListViews(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing views: %w", err)
	}

	p := newPrinter(cmd.OutOrStdout())
	if len(views) == 0 {
		p.Muted("No stored runs.")
		return nil
	}

	rows := make([][]string, 0, len(views))
	for i := range views {
		rows = append(rows, []string{
			views[i].ID,
			views[i].Timestamp.Local().Format(time.DateTime),
			strconv.Itoa(len(views[i].Annotations)),
		})
	}
	p.Table([]string{"VIEW", "CREATED", "DATES"}, rows, -1)
	return nil
}

func runAnnotationsGet(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation storage not configured")
	}

	view, err := annotationService.GetView(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("view %s: %w", args[0], err)
	}

	if annotationsJSON {
		return outputJSON(cmd, view)
	}

	p := newPrinter(cmd.OutOrStdout())
	p.Title(fmt.Sprintf("View %s", view.ID))
	p.Muted(fmt.Sprintf("Created %s by %s", view.Timestamp.Local().Format(time.DateTime), view.App))
	for k, v := range view.Parameters {
		p.Muted(fmt.Sprintf("  %s = %s", k, v))
	}
	outputAnnotations(p, nil, view.Annotations)
	return nil
}

func runAnnotationsDelete(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation storage not configured")
	}
	if err := annotationService.DeleteView(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("view %s: %w", args[0], err)
	}
	newPrinter(cmd.OutOrStdout()).Success(fmt.Sprintf("Deleted view %s", args[0]))
	return nil
}
