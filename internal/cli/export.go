package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-manager/internal/calendar"
	"github.com/pfrederiksen/event-manager/internal/filter"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		outPath    string
		query      string
		categories []string
	)

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export events as an iCalendar (.ics) file",
		Example: `  event-manager export --out events.ics --category Music`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.loadAll(cmd.Context()); err != nil {
				return err
			}

			selector, err := a.resolveSelector(parseCategoryFlags(categories))
			if err != nil {
				return err
			}
			events := filter.New(query, selector...).Apply(a.store.Events())

			var w io.Writer = a.out
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}

			n, err := calendar.Export(w, events)
			if err != nil {
				return err
			}
			if w != a.out {
				fmt.Fprintf(a.out, "Exported %d events to %s\n", n, outPath)
			}
			if skipped := len(events) - n; skipped > 0 {
				fmt.Fprintf(a.errOut, "Skipped %d events without a valid start time\n", skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Output file, '-' for stdout")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only export events matching this text")
	cmd.Flags().StringArrayVarP(&categories, "category", "c", nil, "Only export events in these categories")
	return cmd
}
