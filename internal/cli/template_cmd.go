package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/throughput/internal/cli/formatter"
	"github.com/alexanderramin/throughput/internal/importer"
)

func newTemplateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the empty import template",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return importer.WriteTemplate(cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := importer.WriteTemplate(f); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Template written to "+output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to FILE instead of stdout")

	return cmd
}
