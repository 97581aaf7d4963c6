// File: pkg/catalog/config.go
package catalog

import (
	"fmt"
	"runtime"
)

// Defaults for a catalog run.
const (
	DefaultOutput        = "lookup/output-files-contents-from-repo.txt"
	DefaultMaxBytes      = 1_200_000
	DefaultSampleSize    = 4096
	DefaultNonPrintRatio = 0.30
	maxDefaultWorkers    = 8
)

// DefaultIgnoreDirs are directory names pruned at every depth of the walk.
var DefaultIgnoreDirs = []string{
	".git", "node_modules", ".next", "build", "dist",
	".cache", ".venv", "__pycache__", ".turbo", ".svelte-kit",
}

// TextExtensions are classified as text without sampling their content.
var TextExtensions = []string{
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".json", ".md", ".mdx", ".yml", ".yaml",
	".css", ".scss", ".sass", ".less",
	".html", ".htm",
	".py", ".sh", ".env", ".txt", ".toml", ".ini", ".sql",
}

// Arguments holds the configuration options for a catalog run.
type Arguments struct {
	Repo            string   // Repository root to scan.
	Output          string   // Destination path of the catalog file.
	MaxBytes        int      // Per-file byte cap; larger files are truncated.
	Workers         int      // Read pool size; <= 0 selects DefaultWorkers.
	Gzip            bool     // Write the catalog as a gzip stream.
	Include         []string // Top-level directories to walk; empty walks everything.
	ExtraIgnoreDirs []string // Directory names pruned in addition to DefaultIgnoreDirs.
	ExtraTextExts   []string // Extensions added to the text allow-list.
	SampleSize      int      // Bytes sampled by the text heuristic.
	NonPrintRatio   float64  // Maximum non-printable fraction still considered text.
}

// DefaultArguments returns the arguments used when nothing is configured.
func DefaultArguments() Arguments {
	return Arguments{
		Repo:          ".",
		Output:        DefaultOutput,
		MaxBytes:      DefaultMaxBytes,
		Workers:       DefaultWorkers(),
		SampleSize:    DefaultSampleSize,
		NonPrintRatio: DefaultNonPrintRatio,
	}
}

// DefaultWorkers is min(8, available CPUs).
func DefaultWorkers() int {
	return min(maxDefaultWorkers, runtime.NumCPU())
}

// Validate reports the first invalid option.
func (a Arguments) Validate() error {
	if a.Repo == "" {
		return fmt.Errorf("repo path must not be empty")
	}
	if a.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if a.MaxBytes <= 0 {
		return fmt.Errorf("max bytes must be positive, got %d", a.MaxBytes)
	}
	if a.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", a.Workers)
	}
	if a.SampleSize <= 0 {
		return fmt.Errorf("sample size must be positive, got %d", a.SampleSize)
	}
	if a.NonPrintRatio < 0 || a.NonPrintRatio > 1 {
		return fmt.Errorf("non-printable threshold must be within [0, 1], got %g", a.NonPrintRatio)
	}
	return nil
}

// ignoreSet merges the default ignore names with the extra ones.
func (a Arguments) ignoreSet() IgnoreSet {
	return NewIgnoreSet(append(append([]string{}, DefaultIgnoreDirs...), a.ExtraIgnoreDirs...)...)
}
