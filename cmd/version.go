// File: cmd/version.go
package cmd

import (
	"fmt"

	"repocat/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCommand displays the current version of repocat.
// The --short flag prints only the version number.
func newVersionCommand() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of repocat",
		Long:  `Display the current version information of the repocat CLI tool.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}

	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return versionCmd
}
