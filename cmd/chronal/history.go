package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suykerbuyk/chronal/internal/index"
	"github.com/suykerbuyk/chronal/internal/render"
	"github.com/suykerbuyk/chronal/internal/stats"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded solves, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := []index.Entry{}
			total := 0

			// With history off there is nothing to read, and no database to create.
			if a.cfg.History.Enabled {
				idx, err := index.Open(a.cfg.HistoryPath())
				if err != nil {
					return err
				}
				defer idx.Close()

				if entries, err = idx.List(limit); err != nil {
					return err
				}
				if total, err = idx.Count(); err != nil {
					return err
				}
			}

			if a.out != render.Text {
				if entries == nil {
					entries = []index.Entry{}
				}
				return render.Value(cmd.OutOrStdout(), a.out, entries)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), stats.FormatHistory(entries, total))
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many runs (0 = all)")
	return cmd
}
