package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pocketbook/internal/cli"
	"pocketbook/internal/core"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals for every collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				s := a.book.Summary()
				out := cmd.OutOrStdout()

				var b strings.Builder
				w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "Fixed expenses\t%d\t%s\n", s.Fixed.Count, s.Fixed.Total)
				fmt.Fprintf(w, "Variable expenses\t%d\t%s\n", s.Variable.Count, s.Variable.Total)
				fmt.Fprintf(w, "Incomes\t%d\t%s\n", s.Incomes.Count, s.Incomes.Total)
				fmt.Fprintf(w, "Categories\t%d\t\n", s.Categories)
				fmt.Fprintf(w, "Goals\t%d\t\n", s.Goals)
				if err := w.Flush(); err != nil {
					return err
				}

				fmt.Fprintln(out, cli.FormatTitle("Summary"))
				fmt.Fprintln(out, cli.BoxStyle.Render(strings.TrimRight(b.String(), "\n")))
				balance := "Balance: " + s.Balance.String()
				if s.Balance.Cents < 0 {
					fmt.Fprintln(out, cli.ErrorStyle.Render(balance))
				} else {
					fmt.Fprintln(out, cli.SuccessStyle.Render(balance))
				}

				byCategory := mergeCategories(s.Fixed.ByCategory, s.Variable.ByCategory)
				if len(byCategory) > 0 {
					fmt.Fprintln(out)
					fmt.Fprintln(out, cli.FormatTitle("Spending by category"))
					if err := writeAmounts(out, byCategory); err != nil {
						return err
					}
				}

				if skipped := s.Fixed.Unparsed + s.Variable.Unparsed + s.Incomes.Unparsed; skipped > 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("%d records with unreadable amounts were left out", skipped)))
				}
				return nil
			})
		},
	}
}

// mergeCategories adds up both lists keeping first-seen order.
func mergeCategories(lists ...[]core.CategoryAmount) []core.CategoryAmount {
	var out []core.CategoryAmount
	index := map[string]int{}
	for _, list := range lists {
		for _, ca := range list {
			i, ok := index[ca.Name]
			if !ok {
				i = len(out)
				index[ca.Name] = i
				out = append(out, core.CategoryAmount{Name: ca.Name})
			}
			out[i].Amount.Cents += ca.Amount.Cents
		}
	}
	return out
}

func writeAmounts(out io.Writer, amounts []core.CategoryAmount) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, ca := range amounts {
		fmt.Fprintf(w, "%s\t%s\n", ca.Name, ca.Amount)
	}
	return w.Flush()
}

func dueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List fixed expenses falling due this month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				due := a.book.DueThisMonth(nowFunc())
				if len(due) == 0 {
					fmt.Fprintln(out, cli.SubtleStyle.Render("Nothing due this month."))
					return nil
				}

				fmt.Fprintln(out, cli.FormatTitle("Due this month"))
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, d := range due {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
						d.Index, d.DueOn.Format(core.DateLayout), d.Expense.Name, d.Expense.Amount)
				}
				return w.Flush()
			})
		},
	}
}
