package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cognicore/bigrams/internal/histogram"
	"github.com/cognicore/bigrams/pkg/bigram/internalerr"
	"github.com/cognicore/bigrams/pkg/bigram/store"
	"github.com/cognicore/bigrams/pkg/bigram/store/sqlite"
)

func (a *app) openStore(cmd *cobra.Command, f *flags) (store.Store, error) {
	if f.db == "" {
		return nil, fmt.Errorf("%w: --db required", internalerr.ErrInvalidInput)
	}
	st, err := sqlite.OpenSQLite(cmd.Context(), f.db)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func (a *app) historyCmd(f *flags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved runs, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd, f)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(a.stdout, "No saved runs.")
				return nil
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tTOTAL\tUNIQUE")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
					r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Source, r.Total, r.Unique)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to list (0 for all).")
	return cmd
}

func (a *app) showCmd(f *flags) *cobra.Command {
	var hist bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a saved run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd, f)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "# %s  %s  total=%d unique=%d\n",
				run.ID, run.Source, run.Total, run.Unique)
			if hist {
				return histogram.Render(a.stdout, run.Pairs, a.width())
			}
			return histogram.List(a.stdout, run.Pairs)
		},
	}
	cmd.Flags().BoolVar(&hist, "hist", false, "Show a bar chart of bigrams.")
	return cmd
}
