package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/pkg/version"
)

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and config schema versions",
		Args:  cobra.NoArgs,
		// Printing the version must not depend on a loadable config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(),
				"pagedtable %s\ncommit: %s\nbuilt: %s\nconfig schema: %s\n",
				ver, version.GetGitCommit(), version.GetBuildDate(), config.CurrentVersion)
			return err
		},
	}
}
