package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leengari/recordlib/internal/storage"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a table in the format given by the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && storage.Exists(args[1]) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", args[1])
			}
			t, err := storage.Open(cmd.Context(), args[0], rootOpts.readOptions())
			if err != nil {
				return err
			}
			if err := storage.Save(t, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows)\n", args[1], t.Len())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing output file")
	return cmd
}
