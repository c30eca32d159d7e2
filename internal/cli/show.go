package cli

import (
	"github.com/spf13/cobra"

	"github.com/leengari/recordlib/internal/report"
	"github.com/leengari/recordlib/internal/storage"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int
	var columns []string

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := storage.Open(cmd.Context(), args[0], rootOpts.readOptions())
			if err != nil {
				return err
			}
			if len(columns) > 0 {
				if _, err := t.Select(columns, nil); err != nil {
					return err
				}
			}
			return report.WriteTable(cmd.OutOrStdout(), t, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", rootOpts.cfg.Report.PreviewRows, "maximum rows to print (0 for all)")
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "columns to print, in order")
	return cmd
}
