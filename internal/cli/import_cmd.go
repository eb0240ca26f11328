package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/throughput/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	var yes, dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a delivery-metrics CSV",
		Long: `Import a delivery-metrics CSV into the database.

The whole file is validated before anything is written, and every row is
stored in a single transaction. In an interactive terminal the import is
previewed and confirmed first unless --yes is given.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return withCode(ExitUsage, fmt.Errorf("reading %s: %w", path, err))
			}
			source := filepath.Base(path)

			if dryRun || (!yes && app.interactive()) {
				preview, err := app.Imports.Preview(ctx, bytes.NewReader(data), source)
				if err != nil {
					return importError(err)
				}
				fmt.Fprintln(out, formatter.FormatPreview(preview))
				if dryRun {
					fmt.Fprintln(out, formatter.Dim("Dry run: nothing was written."))
					return nil
				}

				ok, err := app.confirm(
					fmt.Sprintf("Import %s?", source),
					fmt.Sprintf("%d projects, %d features, %d stories",
						preview.Summary.ProjectsCreated, preview.Summary.FeaturesCreated, preview.Summary.StoriesCreated),
				)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, formatter.Dim("Import cancelled."))
					return nil
				}
			}

			result, err := app.Imports.Import(ctx, bytes.NewReader(data), source)
			if err != nil {
				return importError(err)
			}
			fmt.Fprintln(out, formatter.FormatImportResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without writing")

	return cmd
}
