package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/filter"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		query      string
		categories []string
		when       string
		sortFlag   string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally filtered",
		Example: `  event-manager list --query jazz
  event-manager list --category Music --category Art --when "Mar 1-15"
  event-manager list --sort start --format html > events.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			order, err := ParseSortOrder(sortFlag)
			if err != nil {
				return err
			}

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
			criteria := filter.New(query, selector...)
			if when != "" {
				if err := criteria.SetDateRange(when); err != nil {
					return err
				}
			}

			events := criteria.Apply(a.store.Events())
			sortEvents(events, order)

			result := &OutputResult{
				GeneratedAt: time.Now().UTC(),
				Filter:      criteria.String(),
				EventCount:  len(events),
				Events:      events,
			}
			if err := WriteOutput(a.out, result, format, opts.verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive text matched against title and description")
	cmd.Flags().StringArrayVarP(&categories, "category", "c", nil, "Category name or ID (repeatable, 'All' for every category)")
	cmd.Flags().StringVar(&when, "when", "", "Date range: 'Mar 1-15', 'March 1 - April 15' or 'March'")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort order: start or title (default: service order)")
	cmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, json or html")

	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			a.loadCategories(cmd.Context())

			evt, err := a.store.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching event %s: %w", id, err)
			}
			evt.Categories = a.index.ResolveAll(evt.CategoryIDs)

			switch format {
			case FormatJSON:
				return writeJSON(a.out, evt)
			case FormatHTML:
				return writeHTML(a.out, &OutputResult{
					GeneratedAt: time.Now().UTC(),
					Filter:      "Event " + id.String(),
					EventCount:  1,
					Events:      []*event.Event{evt},
				})
			default:
				return writeDetail(a.out, evt)
			}
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, json or html")
	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			if format == FormatHTML {
				return fmt.Errorf("html output is not supported for categories")
			}

			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			categories, err := a.index.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading categories: %w", err)
			}

			if format == FormatJSON {
				return writeJSON(a.out, categories)
			}
			if len(categories) == 0 {
				fmt.Fprintln(a.out, "No categories.")
				return nil
			}
			for _, c := range categories {
				fmt.Fprintf(a.out, "%-6s %s\n", c.ID, c.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text or json")
	return cmd
}
