package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pocketbook/internal/cli"
	"pocketbook/internal/core"
	"pocketbook/internal/form"
	"pocketbook/internal/services"
)

// collection describes how one record type is addressed and shown.
type collection[T any] struct {
	name    string
	title   string
	session func(*services.Book) *form.Session[T]
	header  []string
	row     func(T) []string
	// flags and apply let a collection take input beyond --set.
	flags func(*cobra.Command)
	apply func(*cobra.Command, *form.Session[T]) error
}

func collectionCmds() []*cobra.Command {
	return []*cobra.Command{
		collectionCmd(fixedCollection()),
		collectionCmd(variableCollection()),
		collectionCmd(incomeCollection()),
		collectionCmd(categoryCollection()),
		goalsCmd(),
	}
}

func collectionCmd[T any](c collection[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.name,
		Short: "Manage " + c.title,
	}
	cmd.AddCommand(listCmd(c), addCmd(c), editCmd(c), deleteCmd(c))
	return cmd
}

func listCmd[T any](c collection[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + c.title,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				return renderTable(cmd.OutOrStdout(), c.title, c.header, c.session(a.book).Repository().List(), c.row)
			})
		},
	}
}

func addCmd[T any](c collection[T]) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record",
		Example: fmt.Sprintf("  pocketbook %s add --set %s=... --set %s=...",
			c.name, c.header[1], c.header[2]),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				s := c.session(a.book)
				if err := fill(cmd, c, s, sets); err != nil {
					return err
				}
				i, err := s.Commit(cmd.Context())
				if err != nil {
					return describe(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s #%d", c.name, i)))
				return nil
			})
		},
	}
	addFieldFlags(cmd, c, &sets)
	return cmd
}

func editCmd[T any](c collection[T]) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change fields of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				s := c.session(a.book)
				if err := s.BeginEdit(index); err != nil {
					return describe(err)
				}
				if err := fill(cmd, c, s, sets); err != nil {
					s.CancelEdit()
					return err
				}
				i, err := s.Commit(cmd.Context())
				if err != nil {
					return describe(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated %s #%d", c.name, i)))
				return nil
			})
		},
	}
	addFieldFlags(cmd, c, &sets)
	return cmd
}

func deleteCmd[T any](c collection[T]) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				if err := c.session(a.book).RemoveAt(cmd.Context(), index); err != nil {
					return describe(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %s #%d", c.name, index)))
				return nil
			})
		},
	}
}

func addFieldFlags[T any](cmd *cobra.Command, c collection[T], sets *[]string) {
	cmd.Flags().StringArrayVar(sets, "set", nil, "field=value to assign (repeatable)")
	if c.flags != nil {
		c.flags(cmd)
	}
}

func fill[T any](cmd *cobra.Command, c collection[T], s *form.Session[T], sets []string) error {
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: want field=value", kv)
		}
		s.SetField(strings.TrimSpace(name), value)
	}
	if c.apply != nil {
		return c.apply(cmd, s)
	}
	return nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be a number", s)
	}
	return i, nil
}

// describe turns domain errors into messages for the terminal.
func describe(err error) error {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("missing required fields: %s", strings.Join(verr.Missing, ", "))
	}
	return err
}

func renderTable[T any](out io.Writer, title string, header []string, records []T, row func(T) []string) error {
	if len(records) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No "+title+" yet."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(title))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	cells := make([]string, len(header)+1)
	cells[0] = cli.BoldStyle.Render("#")
	for i, h := range header {
		cells[i+1] = cli.BoldStyle.Render(h)
	}
	fmt.Fprintln(w, strings.Join(cells, "\t"))
	for i, r := range records {
		fmt.Fprintln(w, strconv.Itoa(i)+"\t"+strings.Join(row(r), "\t"))
	}
	return w.Flush()
}

func expenseCollection(name, title string, session func(*services.Book) *form.Session[core.Expense]) collection[core.Expense] {
	return collection[core.Expense]{
		name:    name,
		title:   title,
		session: session,
		header:  []string{core.FieldName, core.FieldAmount, core.FieldDueDate, core.FieldRecurrence, core.FieldFrequency, core.FieldCategory},
		row: func(e core.Expense) []string {
			return []string{e.Name, e.Amount, e.DueDate, string(e.Recurrence), string(e.Frequency), e.Category}
		},
	}
}

func fixedCollection() collection[core.Expense] {
	return expenseCollection("fixed", "fixed expenses", func(b *services.Book) *form.Session[core.Expense] { return b.Fixed })
}

func variableCollection() collection[core.Expense] {
	return expenseCollection("variable", "variable expenses", func(b *services.Book) *form.Session[core.Expense] { return b.Variable })
}

func incomeCollection() collection[core.Income] {
	return collection[core.Income]{
		name:    "incomes",
		title:   "incomes",
		session: func(b *services.Book) *form.Session[core.Income] { return b.Incomes },
		header:  []string{core.FieldName, core.FieldAmount, core.FieldReceivedDate, core.FieldNote},
		row: func(in core.Income) []string {
			return []string{in.Name, in.Amount, in.ReceivedDate, in.Note}
		},
	}
}

func categoryCollection() collection[core.Category] {
	return collection[core.Category]{
		name:    "categories",
		title:   "categories",
		session: func(b *services.Book) *form.Session[core.Category] { return b.Categories },
		header:  []string{core.FieldName, core.FieldDescription, core.FieldKind, core.FieldPriority, core.FieldBudget},
		row: func(c core.Category) []string {
			priority := string(c.Priority)
			if priority == "" {
				priority = "-"
			}
			return []string{c.Name, c.Description, string(c.Kind), priority, c.Budget}
		},
		flags: func(cmd *cobra.Command) {
			cmd.Flags().String("toggle-priority", "", "press a priority button: low, medium or high (pressing the current one clears it)")
		},
		apply: func(cmd *cobra.Command, s *form.Session[core.Category]) error {
			v, err := cmd.Flags().GetString("toggle-priority")
			if err != nil || v == "" {
				return err
			}
			p := core.Priority(v)
			if !p.IsValid() {
				return fmt.Errorf("invalid priority %q: must be low, medium or high", v)
			}
			form.TogglePriority(s, p)
			return nil
		},
	}
}
