package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"proxym-fin/internal/console"

	"github.com/spf13/cobra"
)

func newAdminCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Browse and manage platform records",
	}
	cmd.AddCommand(
		newAdminListCmd(e),
		newAdminCreateCmd(e),
		newAdminEditCmd(e),
		newAdminDeleteCmd(e),
	)
	return cmd
}

func parseKind(arg string) (console.Kind, error) {
	for _, k := range console.Kinds() {
		if string(k) == arg {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q (want product, user or transaction)", arg)
}

func newAdminListCmd(e *env) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list <product|user|transaction>",
		Short: "List records of one kind, optionally filtered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.requireAdmin(); err != nil {
				return err
			}
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			c := console.New(e.rc, e.logger)
			c.SetKind(kind)
			if err := c.Load(cmd.Context()); err != nil {
				return err
			}
			c.Search(query)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDETAILS\tVALUE")
			for _, row := range c.Rows() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", row.ID, row.Primary, row.Details, row.Value)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by name, email, description or id")
	return cmd
}

// applyFields feeds name=value pairs into the open modal. Field names are
// checked against the kind's schema so a typo comes back as an error instead
// of reaching the form.
func applyFields(c *console.Console, kind console.Kind, pairs []string) error {
	known := make(map[string]bool)
	for _, f := range console.SchemaFor(kind).Fields {
		known[f.Name] = true
	}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return fmt.Errorf("malformed field %q (want name=value)", pair)
		}
		if !known[name] {
			return fmt.Errorf("unknown %s field %q", kind, name)
		}
		if err := c.SetField(name, value); err != nil {
			return err
		}
	}
	return nil
}

func fieldUsage(kind console.Kind) string {
	names := make([]string, 0)
	for _, f := range console.SchemaFor(kind).Fields {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

func newAdminCreateCmd(e *env) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "create <product|user|transaction>",
		Short: "Create a record from --field name=value pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.requireAdmin(); err != nil {
				return err
			}
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			c := console.New(e.rc, e.logger)
			c.SetKind(kind)
			if err := c.Load(cmd.Context()); err != nil {
				return err
			}
			c.OpenCreate()
			if err := applyFields(c, kind, fields); err != nil {
				return err
			}
			if err := c.Save(cmd.Context()); err != nil {
				return fmt.Errorf("%w (fields: %s)", err, fieldUsage(kind))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", kind)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field to set, as name=value (repeatable)")
	return cmd
}

func newAdminEditCmd(e *env) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "edit <product|user|transaction> <id>",
		Short: "Edit a record, changing only the given fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.requireAdmin(); err != nil {
				return err
			}
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			var id int64
			if _, err := fmt.Sscanf(args[1], "%d", &id); err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			c := console.New(e.rc, e.logger)
			c.SetKind(kind)
			if err := c.Load(cmd.Context()); err != nil {
				return err
			}
			if err := c.OpenEdit(id); err != nil {
				return err
			}
			if err := applyFields(c, kind, fields); err != nil {
				return err
			}
			if err := c.Save(cmd.Context()); err != nil {
				return fmt.Errorf("%w (fields: %s)", err, fieldUsage(kind))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %d\n", kind, id)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Field to set, as name=value (repeatable)")
	return cmd
}

func newAdminDeleteCmd(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <product|user|transaction> <id>",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.requireAdmin(); err != nil {
				return err
			}
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			var id int64
			if _, err := fmt.Sscanf(args[1], "%d", &id); err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}
			if !yes {
				return fmt.Errorf("deletion requires confirmation, re-run with --yes")
			}

			c := console.New(e.rc, e.logger)
			c.SetKind(kind)
			if err := c.Load(cmd.Context()); err != nil {
				return err
			}
			if err := c.Delete(cmd.Context(), id, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", kind, id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
