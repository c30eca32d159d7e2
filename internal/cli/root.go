// Package cli implements the recordlib command line: show, diff, convert
// and run.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/leengari/recordlib/internal/config"
	"github.com/leengari/recordlib/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Sheet     int
	HeaderRow int
	cfg       *config.Config
}

func (o *RootOptions) readOptions() storage.ReadOptions {
	return storage.ReadOptions{Sheet: o.Sheet, HeaderRow: o.HeaderRow}
}

// NewRootCommand creates the root command. Flag defaults come from cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{cfg: cfg}

	cmd := &cobra.Command{
		Use:   "recordlib",
		Short: "Inspect, diff and transform tabular files",
		Long: `recordlib reads CSV, JSON and Excel tables, prints them, compares
snapshots by key and runs YAML recipes of table operations.`,
		SilenceUsage:  true,
		SilenceErrors: true, // main logs the error
	}

	// Global flags
	cmd.PersistentFlags().IntVar(&opts.Sheet, "sheet", cfg.Input.Sheet, "zero-based worksheet index for workbooks")
	cmd.PersistentFlags().IntVar(&opts.HeaderRow, "header-row", cfg.Input.HeaderRow, "zero-based row holding the column names")

	// Add subcommands
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}
