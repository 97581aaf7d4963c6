package cmd

import (
	"errors"

	"repocat/pkg/catalog"

	"github.com/spf13/cobra"
)

// Exit statuses returned by ExitCode.
const (
	exitFailure      = 1
	exitNotDirectory = 2
)

// NewRootCommand builds the repocat command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repocat",
		Short: "repocat concatenates a repository's text files into one catalog",
		Long: `repocat walks a repository, keeps the files that look like text and writes
their contents into a single catalog file, ready to be fed to another tool.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := &catalogOptions{}
	opts.register(rootCmd)
	rootCmd.RunE = opts.run

	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if errors.Is(err, catalog.ErrNotADirectory) {
		return exitNotDirectory
	}
	return exitFailure
}
