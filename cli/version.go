package cli

import (
	"fmt"

	"git.thinkinpower.net/bindb/data"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command. It does not load the
// configuration, so it works whatever state the config file and environment
// are in.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bindb version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "bindb version %s\n", data.Version)
			return nil
		},
	}
}
