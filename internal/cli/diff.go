package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leengari/recordlib/internal/domain/change"
	"github.com/leengari/recordlib/internal/recordset"
	"github.com/leengari/recordlib/internal/report"
	"github.com/leengari/recordlib/internal/storage"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	var keys []string
	var format string

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Report rows added, deleted and updated between two snapshots",
		Long: `Compare two snapshots of the same table. Rows are matched on --key;
several key columns are combined into one composite key.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			cs, err := diffFiles(cmd, rootOpts, args[0], args[1], keys)
			if err != nil {
				return err
			}
			return report.WriteChanges(cmd.OutOrStdout(), cs, f)
		},
	}

	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "key column(s) identifying a row (required)")
	cmd.Flags().StringVar(&format, "format", rootOpts.cfg.Report.Format, "report format (text|json)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func diffFiles(cmd *cobra.Command, rootOpts *RootOptions, oldPath, newPath string, keys []string) (*change.ChangeSet, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one key column is required")
	}

	var tables [2]*recordset.Table
	for i, path := range []string{oldPath, newPath} {
		t, err := storage.Open(cmd.Context(), path, rootOpts.readOptions())
		if err != nil {
			return nil, err
		}
		tables[i] = t
	}

	pk := keys[0]
	if len(keys) > 1 {
		pk = recordset.DefaultPKName
		for _, t := range tables {
			if _, err := t.SetPK(keys, pk); err != nil {
				return nil, err
			}
		}
	}
	return tables[0].GetChanges(tables[1], pk)
}
