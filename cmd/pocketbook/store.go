package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pocketbook/internal/backend"
	"pocketbook/internal/cli"
)

func storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the backing store",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				keys, err := backend.Inspect(cmd.Context(), a.backend.Store)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Store (%s)", a.cfg.DataBackend)))
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, k := range keys {
					updated := "-"
					if !k.UpdatedAt.IsZero() {
						updated = k.UpdatedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(w, "%s\t%d bytes\t%d writes\t%s\n", k.Key, k.Size, k.Writes, updated)
				}
				return w.Flush()
			})
		},
	})
	return cmd
}
