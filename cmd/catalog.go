package cmd

import (
	"fmt"

	"repocat/pkg/catalog"
	"repocat/pkg/config"
	"repocat/pkg/logging"
	"repocat/pkg/version"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// catalogOptions holds the flag values of the root command.
type catalogOptions struct {
	repo            string
	output          string
	maxBytes        int
	workers         int
	gzip            bool
	include         []string
	extraIgnoreDirs []string
	configPath      string
	verbose         bool
}

func (o *catalogOptions) register(cmd *cobra.Command) {
	defaults := catalog.DefaultArguments()

	flags := cmd.Flags()
	flags.StringVar(&o.repo, "repo", defaults.Repo, "Repo root (default: current dir)")
	flags.StringVar(&o.output, "out", defaults.Output, "Output file")
	flags.IntVar(&o.maxBytes, "max-bytes", defaults.MaxBytes, "Max bytes per file")
	flags.IntVar(&o.workers, "workers", defaults.Workers, "Parallel read workers (1 reads sequentially)")
	flags.BoolVar(&o.gzip, "gzip", false, "Write the catalog gzip-compressed")
	flags.StringArrayVar(&o.include, "include", nil, "Top-level dir to include (repeatable). If omitted, scans all except ignored")
	flags.StringArrayVar(&o.extraIgnoreDirs, "extra-ignore-dir", nil, "Extra dir name to ignore at any depth (repeatable)")
	flags.StringVar(&o.configPath, "config", "", "YAML config file (default: "+config.DefaultFileName+" if present)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
}

// arguments merges defaults, the config file and explicitly set flags, in
// that order of precedence.
func (o *catalogOptions) arguments(cmd *cobra.Command) (catalog.Arguments, error) {
	args := catalog.DefaultArguments()

	configPath := o.configPath
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return args, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}
	cfg.Apply(&args)

	flags := cmd.Flags()
	if flags.Changed("repo") {
		args.Repo = o.repo
	}
	if flags.Changed("out") {
		args.Output = o.output
	}
	if flags.Changed("max-bytes") {
		args.MaxBytes = o.maxBytes
	}
	if flags.Changed("workers") {
		args.Workers = o.workers
	}
	if flags.Changed("gzip") {
		args.Gzip = o.gzip
	}
	args.Include = append(args.Include, o.include...)
	args.ExtraIgnoreDirs = append(args.ExtraIgnoreDirs, o.extraIgnoreDirs...)

	if err := args.Validate(); err != nil {
		return args, fmt.Errorf("invalid configuration: %w", err)
	}
	return args, nil
}

func (o *catalogOptions) run(cmd *cobra.Command, _ []string) error {
	logger, err := logging.Setup(o.verbose, "repocat", version.Get().Version)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	args, err := o.arguments(cmd)
	if err != nil {
		return err
	}

	result, err := catalog.Run(args, logger)
	if err != nil {
		logger.Error("repocat execution failed", zap.Error(err))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Completed. %s → %s (%d files)\n",
		color.GreenString("[✓]"), result.Repo, result.Output, result.FileCount)
	return nil
}
