package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pocketbook/internal/cli"
	"pocketbook/internal/core"
	"pocketbook/internal/form"
	"pocketbook/internal/services"
)

const progressBarWidth = 20

func goalCollection() collection[core.Goal] {
	return collection[core.Goal]{
		name:    "goals",
		title:   "goals",
		session: func(b *services.Book) *form.Session[core.Goal] { return b.Goals },
		header:  []string{core.FieldName, core.FieldTargetAmount, core.FieldDeadline, core.FieldStartDate, core.FieldAccumulated},
		row: func(g core.Goal) []string {
			return []string{g.Name, g.TargetAmount, g.Deadline, g.StartDate, strconv.FormatFloat(g.Accumulated, 'f', 2, 64)}
		},
	}
}

func goalsCmd() *cobra.Command {
	cmd := collectionCmd(goalCollection())
	cmd.AddCommand(contributeCmd(), progressCmd())
	return cmd
}

func contributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <index> <amount>",
		Short: "Add an amount to a goal's accumulated savings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				ctx := cmd.Context()
				if err := a.book.SetContribution(ctx, index, args[1]); err != nil {
					return err
				}
				g, err := a.book.Contribute(ctx, index)
				if err != nil {
					if errors.Is(err, core.ErrInvalidContribution) {
						return fmt.Errorf("%q is not a valid contribution: enter a non-negative amount", args[1])
					}
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
					"%s: %.2f saved (%.1f%%)", g.Name, g.Accumulated, core.Progress(g))))
				return nil
			})
		},
	}
}

func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show how far each goal has come",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				statuses := a.book.GoalStatuses(nowFunc())
				if len(statuses) == 0 {
					fmt.Fprintln(out, cli.SubtleStyle.Render("No goals yet."))
					return nil
				}

				fmt.Fprintln(out, cli.FormatTitle("Goals"))
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, st := range statuses {
					monthly := "-"
					if st.MonthlyNeeded > 0 {
						monthly = fmt.Sprintf("%.2f/month for %d months", st.MonthlyNeeded, st.MonthsLeft)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%.1f%%\t%s\n",
						st.Index, st.Goal.Name, cli.ProgressBar(st.Progress, progressBarWidth), st.Progress, monthly)
				}
				return w.Flush()
			})
		},
	}
}
