package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leengari/recordlib/internal/pipeline"
	"github.com/leengari/recordlib/internal/report"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "run <recipe.yaml>",
		Short: "Run a YAML recipe of table operations",
		Long: `Load the recipe's input and lookup tables, apply its steps in order
and save the result to its output. Without an output the result is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := pipeline.LoadRecipe(args[0])
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(pipeline.NewLoggingObserver())
			res, err := runner.Run(cmd.Context(), rc)
			if err != nil {
				return err
			}

			if rc.Output == nil {
				return report.WriteTable(cmd.OutOrStdout(), res.Table, limit)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d steps, wrote %s (%d rows)\n",
				res.RunID, res.Steps, rc.Output.Path, res.Table.Len())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", rootOpts.cfg.Report.PreviewRows, "maximum rows to print when the recipe has no output")
	return cmd
}
