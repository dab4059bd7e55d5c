package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/hookslab/internal/config"
)

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		// No config is needed, and a broken one should not hide the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			fmt.Fprintf(c.out, "hookslab version %s (built %s)\n", Version, BuildTime)
			if config.NormalizeVersion(Version) == "" {
				fmt.Fprintln(c.out, "development build: min_version checks are skipped")
			}
			return nil
		},
	}
}
