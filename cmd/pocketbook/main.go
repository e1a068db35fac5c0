package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pocketbook/internal/cli"
	"pocketbook/internal/trace"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pocketbook",
		Short: "Personal finance tracker",
		Long: `pocketbook keeps fixed and variable expenses, incomes, categories and
savings goals on this device.

Records are entered with --set field=value and addressed by their position
in "list" output. Every change is written through to local storage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(trace.WithRunID(cmd.Context(), trace.NewRunID()))
		},
	}

	for _, c := range collectionCmds() {
		root.AddCommand(c)
	}
	root.AddCommand(summaryCmd())
	root.AddCommand(dueCmd())
	root.AddCommand(eventsCmd())
	root.AddCommand(storeCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	ctx, cancel := cli.SignalContext(context.Background())
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pocketbook %s\n", version)
		},
	}
}
