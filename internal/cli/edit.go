package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-manager/internal/event"
)

// fieldFlags holds the event fields settable from the command line. The map
// key is the edit session field name.
type fieldFlags struct {
	values     map[string]*string
	categories []string
}

func addFieldFlags(cmd *cobra.Command) *fieldFlags {
	f := &fieldFlags{values: map[string]*string{
		"title":       new(string),
		"description": new(string),
		"startTime":   new(string),
		"endTime":     new(string),
		"location":    new(string),
		"image":       new(string),
	}}

	cmd.Flags().StringVar(f.values["title"], "title", "", "Event title")
	cmd.Flags().StringVar(f.values["description"], "description", "", "Event description")
	cmd.Flags().StringVar(f.values["startTime"], "start", "", "Start time, e.g. 2026-03-15T20:00")
	cmd.Flags().StringVar(f.values["endTime"], "end", "", "End time, e.g. 2026-03-15T23:00")
	cmd.Flags().StringVar(f.values["location"], "location", "", "Location")
	cmd.Flags().StringVar(f.values["image"], "image", "", "Image URL")
	cmd.Flags().StringArrayVarP(&f.categories, "category", "c", nil, "Category name or ID (repeatable, replaces existing categories)")

	return f
}

// flagNames maps session field names to flag names
var flagNames = map[string]string{
	"title":       "title",
	"description": "description",
	"startTime":   "start",
	"endTime":     "end",
	"location":    "location",
	"image":       "image",
}

// apply copies every flag the user set into the open session
func (f *fieldFlags) apply(cmd *cobra.Command, a *app) error {
	for field, value := range f.values {
		if !cmd.Flags().Changed(flagNames[field]) {
			continue
		}
		if err := a.editor.SetField(field, *value); err != nil {
			return err
		}
	}

	if !cmd.Flags().Changed("category") {
		return nil
	}

	ids, err := a.resolveCategories(parseCategoryFlags(f.categories))
	if err != nil {
		return err
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	return a.editor.SetCategories(raw)
}

func newAddCmd(opts *options) *cobra.Command {
	var fields *fieldFlags

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create an event",
		Example: `  event-manager add --title "Jazz Night" --start 2026-03-15T20:00 --category Music`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			a.loadCategories(cmd.Context())

			a.editor.Open(nil)
			defer a.editor.Close()

			if err := fields.apply(cmd, a); err != nil {
				return err
			}

			evt, err := a.editor.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created event %s: %s\n", evt.ID, evt.Title)
			return nil
		},
	}

	fields = addFieldFlags(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	var fields *fieldFlags

	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Edit an event; only the given fields change",
		Example: `  event-manager edit 10 --location "Green Room" --category Music --category Art`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			a.loadCategories(cmd.Context())

			current, err := a.store.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching event %s: %w", id, err)
			}

			a.editor.Open(current)
			defer a.editor.Close()

			if err := fields.apply(cmd, a); err != nil {
				return err
			}

			evt, err := a.editor.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated event %s: %s\n", evt.ID, evt.Title)
			for _, c := range event.DetectChanges(current, evt) {
				fmt.Fprintf(a.out, "  %s: %q -> %q\n", c.Field, c.OldValue, c.NewValue)
			}
			return nil
		},
	}

	fields = addFieldFlags(cmd)
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			if err := a.editor.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted event %s\n", id)
			return nil
		},
	}
}
