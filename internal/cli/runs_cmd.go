package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/throughput/internal/cli/formatter"
)

func newRunsCmd(app *App) *cobra.Command {
	var limit uint64

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent imports",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Projects.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No imports yet.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatRunList(runs))
			return nil
		},
	}

	cmd.Flags().Uint64VarP(&limit, "limit", "n", 20, "Number of runs to show")

	return cmd
}
